// Package ownership decides who owns an existing filesystem entry at a
// target path: dotlink itself (a symlink into the managed source root),
// another tool (a foreign symlink), an application (a freshly written or
// .config file), or the user (an ordinary file).
//
// Classifications are recomputed on every call. Nothing is cached, since the
// filesystem may change between runs.
package ownership

import "time"

// Classification is the closed set of states a target path can be in
type Classification int

const (
	// Absent means no filesystem entry exists at the target
	Absent Classification = iota
	// ManagedSymlinkCorrect is a symlink already pointing at the managed source
	ManagedSymlinkCorrect
	// ManagedSymlinkStale is a symlink into the managed source root that
	// points at a different managed file
	ManagedSymlinkStale
	// ForeignSymlink is a symlink not created by dotlink
	ForeignSymlink
	// ApplicationManagedFile is a regular file some program likely owns
	ApplicationManagedFile
	// OrdinaryFile is a regular file with no sign of application ownership
	OrdinaryFile
	// OtherEntry is a directory, socket, device or any other non-file entry
	OtherEntry
)

var classificationNames = map[Classification]string{
	Absent:                 "absent",
	ManagedSymlinkCorrect:  "managed-symlink-correct",
	ManagedSymlinkStale:    "managed-symlink-stale",
	ForeignSymlink:         "foreign-symlink",
	ApplicationManagedFile: "application-managed-file",
	OrdinaryFile:           "ordinary-file",
	OtherEntry:             "other-entry",
}

// String returns the kebab-case name of the classification
func (c Classification) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsManagedSymlink reports whether the entry is one of dotlink's symlinks
func (c Classification) IsManagedSymlink() bool {
	return c == ManagedSymlinkCorrect || c == ManagedSymlinkStale
}

// IsRegularFile reports whether the entry is a regular file
func (c Classification) IsRegularFile() bool {
	return c == ApplicationManagedFile || c == OrdinaryFile
}

// Entry is the classified state of one target path
type Entry struct {
	Kind Classification

	// Path is the absolute target path
	Path string

	// LinkValue is the raw symlink value, for symlink kinds
	LinkValue string

	// ModTime is the modification time, for regular files
	ModTime time.Time

	// Reason explains an ApplicationManagedFile classification
	Reason string
}
