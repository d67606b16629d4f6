// Package symlink installs managed files as symlinks into the home
// directory. It only ever replaces entries it can prove are its own (stale
// managed symlinks) or, under force, ordinary user files after backing them
// up. Foreign symlinks and application-managed files are never touched.
package symlink

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/backup"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/ownership"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// HandlerName is the name of the symlink handler
const HandlerName = "symlink"

// Action is what Install will do to a target
type Action int

const (
	// ActionSkip leaves the target alone and reports failure
	ActionSkip Action = iota
	// ActionNone leaves the target alone and reports success
	ActionNone
	// ActionCreate creates a new symlink
	ActionCreate
	// ActionReplace removes a stale managed symlink and recreates it
	ActionReplace
	// ActionBackupReplace backs up an ordinary file, removes it and links
	ActionBackupReplace
)

// String returns a short description of the action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "up to date"
	case ActionCreate:
		return "create symlink"
	case ActionReplace:
		return "replace symlink"
	case ActionBackupReplace:
		return "backup and replace file"
	default:
		return "skip"
	}
}

// Plan is the decision for one LinkSpec, computed without touching the
// filesystem beyond reads
type Plan struct {
	Spec       types.LinkSpec
	SourcePath string
	TargetPath string
	Entry      ownership.Entry
	Action     Action

	// Err is set when Action is ActionSkip
	Err *errors.Error
}

// Installer creates, skips or replaces symlinks at target paths
type Installer struct {
	fs         types.FS
	resolver   *paths.Resolver
	classifier *ownership.Classifier
	clock      types.Clock
	logger     zerolog.Logger
}

// NewInstaller creates a symlink Installer
func NewInstaller(fsys types.FS, resolver *paths.Resolver, classifier *ownership.Classifier, clock types.Clock, logger zerolog.Logger) *Installer {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Installer{
		fs:         fsys,
		resolver:   resolver,
		classifier: classifier,
		clock:      clock,
		logger:     logger.With().Str("handler", HandlerName).Logger(),
	}
}

// Assess classifies the target and decides what Install would do
func (i *Installer) Assess(spec types.LinkSpec) Plan {
	plan := Plan{
		Spec:       spec,
		SourcePath: i.resolver.SourcePath(spec.Source),
		TargetPath: i.resolver.TargetPath(spec.Target),
	}

	if _, err := i.fs.Stat(plan.SourcePath); err != nil {
		if os.IsNotExist(err) {
			plan.Err = errors.New(errors.ErrSourceMissing, "Source file does not exist")
		} else {
			plan.Err = errors.Wrap(err, errors.ErrFilesystemFault, "Failed to inspect source")
		}
		plan.Err.WithDetail("source", plan.SourcePath)
		return plan
	}

	entry, err := i.classifier.ClassifyPath(plan.TargetPath, spec.Source)
	if err != nil {
		plan.Err = errors.Wrap(err, errors.ErrFilesystemFault, "Failed to classify target")
		return plan
	}
	plan.Entry = entry

	switch entry.Kind {
	case ownership.Absent:
		plan.Action = ActionCreate
	case ownership.ManagedSymlinkCorrect:
		plan.Action = ActionNone
	case ownership.ManagedSymlinkStale:
		if spec.Force {
			plan.Action = ActionReplace
		} else {
			plan.Err = conflict("Target is a dotfiles symlink but points elsewhere", entry)
		}
	case ownership.ForeignSymlink:
		plan.Err = conflict("Target exists but is NOT managed by dotfiles", entry)
	case ownership.ApplicationManagedFile:
		if spec.Force {
			plan.Err = conflict("Target appears to be application-managed", entry)
		} else {
			plan.Err = conflict("Target exists but is not a symlink", entry)
		}
	case ownership.OrdinaryFile:
		if spec.Force {
			plan.Action = ActionBackupReplace
		} else {
			plan.Err = conflict("Target exists but is not a symlink", entry)
		}
	case ownership.OtherEntry:
		plan.Err = conflict("Target exists and is not a file or symlink", entry)
	}

	return plan
}

// Install makes spec.Target a symlink to the absolute source path. It
// returns true when the link is in place, false when the target was skipped
// or a filesystem operation failed. Failures are logged, never propagated.
func (i *Installer) Install(spec types.LinkSpec) bool {
	return i.Apply(spec) == nil
}

// Apply is Install with the reason for a failure returned as a coded error
func (i *Installer) Apply(spec types.LinkSpec) error {
	plan := i.Assess(spec)
	logger := i.logger.With().Str("target", plan.TargetPath).Logger()

	if plan.Err != nil {
		logRefusal(logger, plan)
		return plan.Err
	}

	switch plan.Action {
	case ActionNone:
		logger.Info().Msg("Symlink already correct")
		return nil
	case ActionReplace:
		logger.Info().Str("current", plan.Entry.LinkValue).Msg("Updating dotfiles symlink")
		if err := i.fs.Remove(plan.TargetPath); err != nil {
			return i.fault(logger, err, "Failed to remove stale symlink")
		}
	case ActionBackupReplace:
		logger.Warn().Msg("Target exists as regular file, backing up")
		backupPath, err := backup.Copy(i.fs, plan.TargetPath, i.clock)
		if err != nil {
			return i.fault(logger, err, "Failed to back up target")
		}
		logger.Info().Str("backup", backupPath).Msg("Backed up existing file")
		if err := i.fs.Remove(plan.TargetPath); err != nil {
			return i.fault(logger, err, "Failed to remove target after backup")
		}
	}

	if err := i.fs.MkdirAll(filepath.Dir(plan.TargetPath), 0755); err != nil {
		return i.fault(logger, err, "Failed to create parent directory")
	}
	if err := i.fs.Symlink(plan.SourcePath, plan.TargetPath); err != nil {
		return i.fault(logger, err, "Failed to create symlink")
	}

	logging.Success(&logger).Str("source", plan.SourcePath).Msg("Created symlink")
	return nil
}

func (i *Installer) fault(logger zerolog.Logger, err error, msg string) error {
	wrapped := errors.Wrap(err, errors.ErrFilesystemFault, msg)
	logger.Error().Err(err).Msg(msg)
	return wrapped
}

func conflict(msg string, entry ownership.Entry) *errors.Error {
	return errors.New(errors.ErrOwnershipConflict, msg).
		WithDetail("classification", entry.Kind.String())
}

func logRefusal(logger zerolog.Logger, plan Plan) {
	var event *zerolog.Event
	if plan.Err.Code == errors.ErrFilesystemFault {
		event = logger.Error().Err(plan.Err.Wrapped)
	} else {
		event = logger.Warn()
	}

	switch plan.Entry.Kind {
	case ownership.ForeignSymlink:
		event = event.Str("current", plan.Entry.LinkValue).
			Str("hint", "Skipping to avoid overwriting user/application managed configuration")
	case ownership.ApplicationManagedFile:
		event = event.Str("reason", plan.Entry.Reason).
			Str("hint", "Skipping to avoid overwriting application configuration")
	case ownership.OrdinaryFile, ownership.ManagedSymlinkStale:
		if !plan.Spec.Force {
			event = event.Str("hint", "Re-run with --force to replace it")
		}
	}

	if plan.Err.Code == errors.ErrSourceMissing {
		event = event.Str("source", plan.SourcePath)
	}

	event.Msg(plan.Err.Message)
}
