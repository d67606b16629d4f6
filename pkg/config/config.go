package config

import (
	"time"

	"github.com/arthur-debert/dotlink/pkg/types"
)

// Config is the decoded configuration file
type Config struct {
	Directories   []string          `koanf:"directories"`
	Links         map[string]string `koanf:"links"`
	Defaults      Defaults          `koanf:"defaults"`
	ShellCommands []ShellCommand    `koanf:"shell_commands"`
	Policy        Policy            `koanf:"policy"`
	Sourceable    Sourceable        `koanf:"sourceable"`

	// Path is the config file that was loaded, empty when only defaults apply
	Path string `koanf:"-"`
}

// Defaults holds run-wide switches
type Defaults struct {
	Force bool `koanf:"force"`
}

// ShellCommand is a post-install command
type ShellCommand struct {
	Command     string `koanf:"command"`
	Description string `koanf:"description"`
}

// Policy tunes the ownership heuristic
type Policy struct {
	RecentWindow time.Duration `koanf:"recent_window"`
}

// Sourceable tunes the shell rc file merger
type Sourceable struct {
	Files           []string `koanf:"files"`
	AdoptMaxLines   int      `koanf:"adopt_max_lines"`
	CompletionTools []string `koanf:"completion_tools"`
}

// InstallConfig returns the resolved input of an install run
func (c *Config) InstallConfig() types.InstallConfig {
	cfg := types.InstallConfig{
		Directories: append([]string(nil), c.Directories...),
		Links:       make(map[string]string, len(c.Links)),
		Force:       c.Defaults.Force,
	}
	for target, source := range c.Links {
		cfg.Links[target] = source
	}
	for _, cmd := range c.ShellCommands {
		if cmd.Command == "" {
			continue
		}
		description := cmd.Description
		if description == "" {
			description = cmd.Command
		}
		cfg.ShellCommands = append(cfg.ShellCommands, types.ShellCommand{
			Command:     cmd.Command,
			Description: description,
		})
	}
	return cfg
}

// PolicyValues returns the installer policy, falling back to the built-in
// value for anything unset
func (c *Config) PolicyValues() types.Policy {
	policy := types.DefaultPolicy()
	if c.Policy.RecentWindow > 0 {
		policy.RecentWindow = c.Policy.RecentWindow
	}
	if c.Sourceable.Files != nil {
		policy.SourceableFiles = c.Sourceable.Files
	}
	if c.Sourceable.AdoptMaxLines > 0 {
		policy.AdoptMaxLines = c.Sourceable.AdoptMaxLines
	}
	if c.Sourceable.CompletionTools != nil {
		policy.CompletionTools = c.Sourceable.CompletionTools
	}
	return policy
}
