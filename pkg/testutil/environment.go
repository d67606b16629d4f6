// Package testutil provides isolated test environments for dotlink's
// installers: a managed source root and a fake home directory on the real
// filesystem, plus a fixed clock for the time-dependent ownership heuristic.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// OldAge is comfortably outside the default recent-modification window
	OldAge = 48 * time.Hour

	// RecentAge is comfortably inside the default recent-modification window
	RecentAge = 5 * time.Minute
)

// FixedClock is a types.Clock frozen at T
type FixedClock struct {
	T time.Time
}

// Now returns the frozen time
func (c *FixedClock) Now() time.Time { return c.T }

// Advance moves the clock forward
func (c *FixedClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// TestEnvironment is a temp-dir backed source root and home directory
type TestEnvironment struct {
	SourceRoot string
	HomeDir    string

	FS       types.FS
	Clock    *FixedClock
	Resolver *paths.Resolver
	Logger   zerolog.Logger

	t *testing.T
}

// NewTestEnvironment creates the directories and points HOME at the fake home
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		SourceRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:    filepath.Join(tempDir, "home"),
		FS:         filesystem.NewOS(),
		Clock:      &FixedClock{T: time.Now().Truncate(time.Second)},
		Logger:     zerolog.Nop(),
		t:          t,
	}

	for _, dir := range []string{env.SourceRoot, env.HomeDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)

	resolver, err := paths.NewResolver(env.SourceRoot, env.HomeDir)
	if err != nil {
		t.Fatalf("Failed to create resolver: %v", err)
	}
	env.Resolver = resolver

	return env
}

// Source returns the absolute path of a source relative to the source root
func (env *TestEnvironment) Source(rel string) string {
	return filepath.Join(env.SourceRoot, rel)
}

// Target returns the absolute path of a target relative to the home dir
func (env *TestEnvironment) Target(rel string) string {
	return filepath.Join(env.HomeDir, rel)
}

// WriteSource creates a managed source file and returns its absolute path
func (env *TestEnvironment) WriteSource(rel, content string) string {
	env.t.Helper()
	path := env.Source(rel)
	env.writeFile(path, content)
	return path
}

// WriteTarget creates a regular file under the home dir whose modification
// time is age before the environment clock
func (env *TestEnvironment) WriteTarget(rel, content string, age time.Duration) string {
	env.t.Helper()
	path := env.Target(rel)
	env.writeFile(path, content)

	mtime := env.Clock.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		env.t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
	return path
}

// SymlinkTarget creates a symlink under the home dir pointing at dest
func (env *TestEnvironment) SymlinkTarget(rel, dest string) string {
	env.t.Helper()
	path := env.Target(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.Symlink(dest, path); err != nil {
		env.t.Fatalf("Failed to create symlink %s: %v", path, err)
	}
	return path
}

// ReadTarget returns the content of a target file
func (env *TestEnvironment) ReadTarget(rel string) string {
	env.t.Helper()
	data, err := os.ReadFile(env.Target(rel))
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Readlink returns the link value of a target symlink
func (env *TestEnvironment) Readlink(rel string) string {
	env.t.Helper()
	dest, err := os.Readlink(env.Target(rel))
	if err != nil {
		env.t.Fatalf("Failed to readlink %s: %v", rel, err)
	}
	return dest
}

// IsSymlink reports whether the target is a symlink
func (env *TestEnvironment) IsSymlink(rel string) bool {
	info, err := os.Lstat(env.Target(rel))
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// Exists reports whether any entry exists at the target
func (env *TestEnvironment) Exists(rel string) bool {
	_, err := os.Lstat(env.Target(rel))
	return err == nil
}

// Backups lists backup files written next to a target, sorted
func (env *TestEnvironment) Backups(rel string) []string {
	env.t.Helper()
	matches, err := filepath.Glob(env.Target(rel) + ".backup.*")
	if err != nil {
		env.t.Fatalf("Failed to glob backups: %v", err)
	}
	sort.Strings(matches)
	return matches
}

// ModTime returns the modification time of a target
func (env *TestEnvironment) ModTime(rel string) time.Time {
	env.t.Helper()
	info, err := os.Lstat(env.Target(rel))
	if err != nil {
		env.t.Fatalf("Failed to stat %s: %v", rel, err)
	}
	return info.ModTime()
}

func (env *TestEnvironment) writeFile(path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}
