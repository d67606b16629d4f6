package testutil

import (
	"io/fs"

	"github.com/arthur-debert/dotlink/pkg/types"
)

// FaultyFS wraps a types.FS and fails the named operations with Err
type FaultyFS struct {
	types.FS
	Fail map[string]bool
	Err  error

	// Mutations counts calls that change the filesystem
	Mutations int
}

// NewFaultyFS wraps inner, failing each of ops ("WriteFile", "Symlink", ...)
func NewFaultyFS(inner types.FS, err error, ops ...string) *FaultyFS {
	fail := make(map[string]bool, len(ops))
	for _, op := range ops {
		fail[op] = true
	}
	return &FaultyFS{FS: inner, Fail: fail, Err: err}
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f.Mutations++
	if f.Fail["WriteFile"] {
		return &fs.PathError{Op: "write", Path: name, Err: f.Err}
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	f.Mutations++
	if f.Fail["MkdirAll"] {
		return &fs.PathError{Op: "mkdir", Path: path, Err: f.Err}
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	f.Mutations++
	if f.Fail["Symlink"] {
		return &fs.PathError{Op: "symlink", Path: newname, Err: f.Err}
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Remove(name string) error {
	f.Mutations++
	if f.Fail["Remove"] {
		return &fs.PathError{Op: "remove", Path: name, Err: f.Err}
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	f.Mutations++
	if f.Fail["Rename"] {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: f.Err}
	}
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if f.Fail["ReadFile"] {
		return nil, &fs.PathError{Op: "read", Path: name, Err: f.Err}
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if f.Fail["Lstat"] {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: f.Err}
	}
	return f.FS.Lstat(name)
}
