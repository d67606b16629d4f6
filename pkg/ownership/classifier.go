package ownership

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// configSegment marks files living under an XDG-style config directory
const configSegment = "/.config/"

const (
	reasonRecent = "recently modified"
	reasonConfig = "inside a .config directory"
)

// Classifier inspects target paths and classifies their current state
type Classifier struct {
	fs           types.FS
	resolver     *paths.Resolver
	clock        types.Clock
	recentWindow time.Duration
	logger       zerolog.Logger
}

// NewClassifier creates a Classifier. Regular files modified less than
// recentWindow before clock.Now() are considered application managed.
func NewClassifier(fsys types.FS, resolver *paths.Resolver, clock types.Clock, recentWindow time.Duration, logger zerolog.Logger) *Classifier {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Classifier{
		fs:           fsys,
		resolver:     resolver,
		clock:        clock,
		recentWindow: recentWindow,
		logger:       logger,
	}
}

// Classify resolves spec.Target and classifies it against spec.Source
func (c *Classifier) Classify(spec types.LinkSpec) (Entry, error) {
	return c.ClassifyPath(c.resolver.TargetPath(spec.Target), spec.Source)
}

// ClassifyPath classifies the entry at an absolute target path. source is
// the configured (relative) source the target should point at.
func (c *Classifier) ClassifyPath(targetPath, source string) (Entry, error) {
	entry := Entry{Path: targetPath}

	info, err := c.fs.Lstat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			entry.Kind = Absent
			return entry, nil
		}
		return entry, errors.Wrapf(err, errors.ErrFilesystemFault, "failed to inspect %s", targetPath).
			WithDetail("target", targetPath)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		return c.classifySymlink(entry, source)
	case info.Mode().IsRegular():
		return c.classifyFile(entry, info), nil
	default:
		entry.Kind = OtherEntry
		return entry, nil
	}
}

func (c *Classifier) classifySymlink(entry Entry, source string) (Entry, error) {
	linkValue, err := c.fs.Readlink(entry.Path)
	if err != nil {
		return entry, errors.Wrapf(err, errors.ErrFilesystemFault, "failed to read symlink %s", entry.Path).
			WithDetail("target", entry.Path)
	}
	entry.LinkValue = linkValue

	switch {
	case linkValue == c.resolver.SourcePath(source) || linkValue == source:
		entry.Kind = ManagedSymlinkCorrect
	case strings.Contains(linkValue, c.resolver.SourceRoot()):
		entry.Kind = ManagedSymlinkStale
	default:
		entry.Kind = ForeignSymlink
	}
	return entry, nil
}

// classifyFile applies the application-managed heuristic. It favors false
// positives: a file some program just wrote must not be clobbered.
func (c *Classifier) classifyFile(entry Entry, info fs.FileInfo) Entry {
	entry.ModTime = info.ModTime()
	age := c.clock.Now().Sub(info.ModTime())

	switch {
	case age < c.recentWindow:
		entry.Kind = ApplicationManagedFile
		entry.Reason = reasonRecent
		c.logger.Debug().
			Str("target", entry.Path).
			Dur("age", age.Round(time.Second)).
			Msg("File was recently modified")
	case strings.Contains(filepath.ToSlash(entry.Path), configSegment):
		entry.Kind = ApplicationManagedFile
		entry.Reason = reasonConfig
		c.logger.Debug().
			Str("target", entry.Path).
			Msg("File is in .config directory")
	default:
		entry.Kind = OrdinaryFile
	}
	return entry
}
