package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStarterRoundTrip(t *testing.T) {
	for _, name := range []string{"dotlink.toml", "dotlink.yaml"} {
		t.Run(name, func(t *testing.T) {
			root := isolate(t)
			path := filepath.Join(root, name)

			require.NoError(t, config.WriteStarter(path, config.StarterOptions{
				Links: map[string]string{"~/.vimrc": "vim/vimrc"},
			}, false))

			cfg, err := config.Load(config.LoadOptions{Root: root})
			require.NoError(t, err)

			assert.Equal(t, path, cfg.Path)
			assert.Equal(t, map[string]string{"~/.vimrc": "vim/vimrc"}, cfg.Links)
			assert.Equal(t, []string{"~/.cache/zsh"}, cfg.Directories)
			assert.Equal(t, time.Hour, cfg.Policy.RecentWindow)
			require.Len(t, cfg.InstallConfig().ShellCommands, 1)
		})
	}
}

func TestWriteStarterRefusesOverwrite(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "dotlink.toml")
	writeFile(t, path, "# mine\n")

	err := config.WriteStarter(path, config.StarterOptions{}, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "# mine\n", string(content))

	require.NoError(t, config.WriteStarter(path, config.StarterOptions{}, true))
}

func TestStarterContentCommented(t *testing.T) {
	content, err := config.StarterContent(config.StarterOptions{Format: config.FormatTOML, Commented: true})
	require.NoError(t, err)

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}

	root := isolate(t)
	writeFile(t, filepath.Join(root, "dotlink.toml"), string(content))
	cfg, err := config.Load(config.LoadOptions{Root: root})
	require.NoError(t, err)
	assert.Empty(t, cfg.Links)
	assert.Empty(t, cfg.InstallConfig().ShellCommands)
}

func TestStarterContentUnknownFormat(t *testing.T) {
	_, err := config.StarterContent(config.StarterOptions{Format: "ini"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, config.FormatYAML, config.FormatForPath("a/dotlink.yml"))
	assert.Equal(t, config.FormatYAML, config.FormatForPath("dotlink.YAML"))
	assert.Equal(t, config.FormatTOML, config.FormatForPath("dotlink.toml"))
}

func TestWriteStarterSourceableFiles(t *testing.T) {
	root := isolate(t)
	path := filepath.Join(root, "dotlink.toml")

	require.NoError(t, config.WriteStarter(path, config.StarterOptions{
		SourceableFiles: []string{".bashrc"},
	}, false))

	cfg, err := config.Load(config.LoadOptions{Root: root})
	require.NoError(t, err)
	assert.Equal(t, []string{".bashrc"}, cfg.Sourceable.Files)
	assert.Contains(t, cfg.Links, "~/.zshrc")
}
