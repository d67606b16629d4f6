package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported starter formats
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

const starterHeader = "# dotlink configuration\n# Sources are relative to the dotfiles root, targets may use ~ or $HOME.\n\n"

type starterDoc struct {
	Directories   []string          `toml:"directories" yaml:"directories"`
	ShellCommands []starterCommand  `toml:"shell_commands" yaml:"shell_commands"`
	Defaults      starterDefaults   `toml:"defaults" yaml:"defaults"`
	Links         map[string]string `toml:"links" yaml:"links"`
	Policy        starterPolicy     `toml:"policy" yaml:"policy"`
	Sourceable    starterSourceable `toml:"sourceable" yaml:"sourceable"`
}

type starterCommand struct {
	Command     string `toml:"command" yaml:"command"`
	Description string `toml:"description" yaml:"description"`
}

type starterDefaults struct {
	Force bool `toml:"force" yaml:"force"`
}

type starterPolicy struct {
	RecentWindow string `toml:"recent_window" yaml:"recent_window"`
}

type starterSourceable struct {
	Files           []string `toml:"files" yaml:"files"`
	AdoptMaxLines   int      `toml:"adopt_max_lines" yaml:"adopt_max_lines"`
	CompletionTools []string `toml:"completion_tools" yaml:"completion_tools"`
}

// StarterOptions shapes a starter config
type StarterOptions struct {
	// Format is FormatTOML or FormatYAML; empty picks from the file extension
	Format string
	// Links seeds the links table; nil uses a small example set
	Links map[string]string
	// SourceableFiles overrides the merged shell files; nil keeps the defaults
	SourceableFiles []string
	// Commented writes every value commented out
	Commented bool
}

func newStarterDoc(links map[string]string, sourceable []string) starterDoc {
	if links == nil {
		links = map[string]string{
			"~/.vimrc":     "vim/vimrc",
			"~/.gitconfig": "git/gitconfig",
			"~/.zshrc":     "zsh/zshrc",
		}
	}
	if sourceable == nil {
		sourceable = []string{".zshrc", ".bashrc", ".profile"}
	}
	return starterDoc{
		Directories: []string{"~/.cache/zsh"},
		ShellCommands: []starterCommand{
			{Command: "mkdir -p ~/.local/bin", Description: "Create local bin directory"},
		},
		Links: links,
		Policy: starterPolicy{
			RecentWindow: "1h",
		},
		Sourceable: starterSourceable{
			Files:           sourceable,
			AdoptMaxLines:   3,
			CompletionTools: []string{"scw"},
		},
	}
}

// StarterContent renders a starter config in format
func StarterContent(opts StarterOptions) ([]byte, error) {
	doc := newStarterDoc(opts.Links, opts.SourceableFiles)

	var (
		body []byte
		err  error
	)
	switch opts.Format {
	case FormatTOML:
		body, err = toml.Marshal(doc)
	case FormatYAML:
		body, err = yaml.Marshal(doc)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported config format %q", opts.Format)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render starter config")
	}

	content := string(body)
	if opts.Commented {
		content = commentOutConfigValues(content)
	}
	return []byte(starterHeader + content), nil
}

// FormatForPath returns the starter format implied by a file extension
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// WriteStarter writes a starter config to path, refusing to replace an
// existing file unless overwrite is set
func WriteStarter(path string, opts StarterOptions, overwrite bool) error {
	if opts.Format == "" {
		opts.Format = FormatForPath(path)
	}

	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.Newf(errors.ErrInvalidInput, "%s already exists", path).
			WithDetail("path", path)
	}

	content, err := StarterContent(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrFilesystemFault, "failed to create config directory")
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystemFault, "failed to write %s", path)
	}
	return nil
}

// commentOutConfigValues comments out every line holding a value, keeping
// blank lines, comments and TOML table headers
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.Contains(trimmed, "="):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
