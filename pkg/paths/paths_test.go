package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver(t *testing.T) {
	t.Run("requires_source_root", func(t *testing.T) {
		_, err := NewResolver("", "/home/u")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("expands_tilde_in_root", func(t *testing.T) {
		r, err := NewResolver("~/dotfiles", "/home/u")
		require.NoError(t, err)
		assert.Equal(t, "/home/u/dotfiles", r.SourceRoot())
		assert.Equal(t, "/home/u", r.HomeDir())
	})

	t.Run("defaults_home_from_env", func(t *testing.T) {
		t.Setenv("HOME", "/env/home")
		r, err := NewResolver("/src", "")
		require.NoError(t, err)
		assert.Equal(t, "/env/home", r.HomeDir())
	})
}

func TestSourcePath(t *testing.T) {
	r, err := NewResolver("/src/dotfiles", "/home/u")
	require.NoError(t, err)

	assert.Equal(t, "/src/dotfiles/zsh/zshrc", r.SourcePath("zsh/zshrc"))
	assert.Equal(t, "/src/dotfiles/vimrc", r.SourcePath("./vimrc"))
	assert.Equal(t, "/elsewhere/file", r.SourcePath("/elsewhere//file"))
}

func TestTargetPath(t *testing.T) {
	r, err := NewResolver("/src/dotfiles", "/home/u")
	require.NoError(t, err)
	t.Setenv("DOTLINK_TEST_DIR", "/opt/custom")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"tilde_slash", "~/.zshrc", "/home/u/.zshrc"},
		{"bare_tilde", "~", "/home/u"},
		{"home_var", "$HOME/.config/nvim/init.lua", "/home/u/.config/nvim/init.lua"},
		{"braced_home_var", "${HOME}/.gitconfig", "/home/u/.gitconfig"},
		{"other_env_var", "$DOTLINK_TEST_DIR/app.conf", "/opt/custom/app.conf"},
		{"absolute", "/etc/../etc/hosts", "/etc/hosts"},
		{"relative_is_home_relative", ".vimrc", "/home/u/.vimrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.TargetPath(tt.target))
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "", ExpandHome("", "/h"))
	assert.Equal(t, "/h", ExpandHome("~", "/h"))
	assert.Equal(t, "/h/x", ExpandHome("~/x", "/h"))
	assert.Equal(t, "~x", ExpandHome("~x", "/h"))
	assert.Equal(t, "/abs", ExpandHome("/abs", "/h"))
}

func TestFindSourceRoot(t *testing.T) {
	t.Run("explicit_wins", func(t *testing.T) {
		t.Setenv(EnvDotfilesRoot, "/env/root")
		root, fallback, err := FindSourceRoot("/flag/root")
		require.NoError(t, err)
		assert.Equal(t, "/flag/root", root)
		assert.False(t, fallback)
	})

	t.Run("env_var", func(t *testing.T) {
		t.Setenv(EnvDotfilesRoot, "/env/root")
		root, fallback, err := FindSourceRoot("")
		require.NoError(t, err)
		assert.Equal(t, "/env/root", root)
		assert.False(t, fallback)
	})

	t.Run("git_or_cwd", func(t *testing.T) {
		t.Setenv(EnvDotfilesRoot, "")
		root, _, err := FindSourceRoot("")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(root))
	})
}

func TestConfigSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	got := ConfigSearchPaths("/src")
	assert.Equal(t, []string{
		"/src/dotlink.toml",
		"/src/.dotlink.toml",
		"/src/dotlink.yaml",
		"/src/dotlink.yml",
		"/xdg/config/dotlink/config.toml",
	}, got)
}

func TestHomeDirPrefersEnv(t *testing.T) {
	t.Setenv("HOME", "/from/env")
	assert.Equal(t, "/from/env", HomeDir())
}
