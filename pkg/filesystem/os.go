// Package filesystem implements types.FS on the real filesystem. Tests wrap
// it with testutil.FaultyFS to inject failures.
package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/dotlink/pkg/types"
)

var _ types.FS = OS{}

// OS delegates every call to package os. Paths are used as given; callers
// pass absolute paths.
type OS struct{}

// NewOS returns the real filesystem
func NewOS() types.FS {
	return OS{}
}

func (OS) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (OS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (OS) ReadFile(name string) ([]byte, error)   { return os.ReadFile(name) }
func (OS) Readlink(name string) (string, error)   { return os.Readlink(name) }

func (OS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (OS) Symlink(oldname, newname string) error        { return os.Symlink(oldname, newname) }
func (OS) Remove(name string) error                     { return os.Remove(name) }
func (OS) Rename(oldpath, newpath string) error         { return os.Rename(oldpath, newpath) }
