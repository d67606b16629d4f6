package types

import "time"

// LinkSpec describes one managed target.
// Source is relative to the managed source root; Target is absolute or
// home-relative (~, $HOME).
type LinkSpec struct {
	Target string
	Source string
	Force  bool
}

// ShellCommand is a post-install command run after all links
type ShellCommand struct {
	Command     string
	Description string
}

// InstallConfig is the fully resolved input of an install run
type InstallConfig struct {
	Directories   []string
	Links         map[string]string
	Force         bool
	ShellCommands []ShellCommand
}

// Specs returns one LinkSpec per configured link, carrying the run's force flag
func (c InstallConfig) Specs() []LinkSpec {
	specs := make([]LinkSpec, 0, len(c.Links))
	for target, source := range c.Links {
		specs = append(specs, LinkSpec{Target: target, Source: source, Force: c.Force})
	}
	return specs
}

// Policy holds the tunable constants of the ownership and merge heuristics
type Policy struct {
	// RecentWindow marks regular files modified within it as application managed
	RecentWindow time.Duration
	// SourceableFiles are target name fragments merged instead of symlinked
	SourceableFiles []string
	// AdoptMaxLines is how many meaningful lines an unmanaged rc file may
	// hold and still be adopted without force
	AdoptMaxLines int
	// CompletionTools get their `eval "$(<tool> autocomplete ...)"` lines guarded
	CompletionTools []string
}

// DefaultPolicy returns the built-in policy
func DefaultPolicy() Policy {
	return Policy{
		RecentWindow:    time.Hour,
		SourceableFiles: []string{".zshrc", ".bashrc", ".profile"},
		AdoptMaxLines:   3,
		CompletionTools: []string{"scw"},
	}
}
