// Package backup writes timestamped copies of files before dotlink
// overwrites them. Backups are written next to the original as
// <path>.backup.<unix-epoch-millis> and are never read back.
package backup

import (
	"fmt"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Suffix separates the original path from the timestamp
const Suffix = ".backup."

// PathFor returns the backup path for path at the clock's current time
func PathFor(path string, clock types.Clock) string {
	return fmt.Sprintf("%s%s%d", path, Suffix, clock.Now().UnixMilli())
}

// Copy writes a copy of the regular file at path and returns the backup path
func Copy(fsys types.FS, path string, clock types.Clock) (string, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystemFault, "failed to inspect %s for backup", path)
	}

	content, err := fsys.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystemFault, "failed to read %s for backup", path)
	}

	backupPath := PathFor(path, clock)
	if err := fsys.WriteFile(backupPath, content, info.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystemFault, "failed to write backup %s", backupPath)
	}
	return backupPath, nil
}

// Move renames the entry at path (any kind, symlinks included) to its
// backup path, leaving path absent
func Move(fsys types.FS, path string, clock types.Clock) (string, error) {
	backupPath := PathFor(path, clock)
	if err := fsys.Rename(path, backupPath); err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystemFault, "failed to move %s aside", path)
	}
	return backupPath, nil
}
