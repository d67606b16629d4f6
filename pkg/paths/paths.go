package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for the source root
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under XDG base dirs
	AppDirName = "dotlink"

	// UserConfigFile is the per-user config file name under XDG_CONFIG_HOME
	UserConfigFile = "config.toml"
)

// RootConfigFiles are looked up, in order, at the source root
var RootConfigFiles = []string{"dotlink.toml", ".dotlink.toml", "dotlink.yaml", "dotlink.yml"}

// Resolver maps logical source and target paths to absolute paths
type Resolver struct {
	sourceRoot string
	homeDir    string
}

// NewResolver creates a Resolver. sourceRoot is made absolute; an empty
// homeDir is looked up from the environment.
func NewResolver(sourceRoot, homeDir string) (*Resolver, error) {
	if sourceRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput, "source root is required")
	}
	if homeDir == "" {
		homeDir = HomeDir()
	}

	absRoot, err := filepath.Abs(ExpandHome(sourceRoot, homeDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystemFault, "failed to get absolute path for source root")
	}

	return &Resolver{sourceRoot: absRoot, homeDir: homeDir}, nil
}

// SourceRoot returns the absolute managed source root
func (r *Resolver) SourceRoot() string {
	return r.sourceRoot
}

// HomeDir returns the home directory targets are expanded against
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// SourcePath resolves a source relative to the source root. Absolute
// sources are only cleaned.
func (r *Resolver) SourcePath(source string) string {
	if filepath.IsAbs(source) {
		return filepath.Clean(source)
	}
	return filepath.Join(r.sourceRoot, source)
}

// TargetPath expands ~ and environment variables in target. A target that
// is still relative afterwards is taken relative to the home directory.
func (r *Resolver) TargetPath(target string) string {
	expanded := ExpandHome(target, r.homeDir)
	expanded = os.Expand(expanded, func(key string) string {
		if key == EnvHome {
			return r.homeDir
		}
		return os.Getenv(key)
	})

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(r.homeDir, expanded)
	}
	return filepath.Clean(expanded)
}

// HomeDir returns the user's home directory, preferring $HOME for testability
func HomeDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~"
	}
	return home
}

// ExpandHome expands a leading ~ to home
func ExpandHome(path, home string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		return home
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// FindSourceRoot determines the managed source root using the following priority:
// 1. explicit (the --root flag)
// 2. DOTFILES_ROOT environment variable
// 3. Git repository root (found via 'git rev-parse --show-toplevel')
// 4. Current working directory (fallback)
//
// The bool result reports whether the working directory fallback was used.
func FindSourceRoot(explicit string) (string, bool, error) {
	if explicit != "" {
		return ExpandHome(explicit, HomeDir()), false, nil
	}

	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return ExpandHome(root, HomeDir()), false, nil
	}

	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFilesystemFault, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ConfigSearchPaths lists candidate config files in lookup order: files at
// the source root, then the per-user file under XDG_CONFIG_HOME.
func ConfigSearchPaths(sourceRoot string) []string {
	candidates := make([]string, 0, len(RootConfigFiles)+1)
	for _, name := range RootConfigFiles {
		candidates = append(candidates, filepath.Join(sourceRoot, name))
	}
	return append(candidates, UserConfigPath())
}

// UserConfigPath returns $XDG_CONFIG_HOME/dotlink/config.toml
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, AppDirName, UserConfigFile)
}
