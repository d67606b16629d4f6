// Package sourceable maintains shell startup files that both source the
// managed configuration and keep whatever other tools appended to them.
//
// A sourceable target is a regular file, never a symlink. It starts with a
// fixed header holding a single `source "<abs>"` directive, followed by an
// optional block of preserved user customizations. Every run re-merges the
// file so the directive stays within the first HeaderWindow lines.
//
// The text handling (extraction, cleanup, composition) lives in pure
// functions in content.go; Merger only reads and writes around them.
package sourceable

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/backup"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/ownership"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// HandlerName is the name of the sourceable handler
const HandlerName = "sourceable"

const defaultFileMode = 0644

// Action is what Install will do to a target
type Action int

const (
	// ActionSkip leaves the target alone and reports failure
	ActionSkip Action = iota
	// ActionNone leaves an already merged file alone
	ActionNone
	// ActionCreate writes a new file
	ActionCreate
	// ActionConvert removes a managed symlink and writes a file in its place
	ActionConvert
	// ActionMoveAside renames a foreign symlink to a backup and writes a file
	ActionMoveAside
	// ActionReorganize moves a buried directive back to the top
	ActionReorganize
	// ActionAdopt rebuilds a file that does not source the managed config yet
	ActionAdopt
	// ActionBackupRebuild is ActionAdopt after backing up the file
	ActionBackupRebuild
)

// String returns a short description of the action
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "up to date"
	case ActionCreate:
		return "create file"
	case ActionConvert:
		return "convert symlink to file"
	case ActionMoveAside:
		return "move symlink aside"
	case ActionReorganize:
		return "reorganize file"
	case ActionAdopt:
		return "adopt file"
	case ActionBackupRebuild:
		return "backup and rebuild file"
	default:
		return "skip"
	}
}

// Plan is the decision for one LinkSpec. Content is the full text Install
// would write, empty for ActionSkip and ActionNone.
type Plan struct {
	Spec       types.LinkSpec
	SourcePath string
	TargetPath string
	Entry      ownership.Entry
	Action     Action
	Content    string

	// Fixed is set when cleanup rewrote part of the preserved content
	Fixed bool
	// Err is set when Action is ActionSkip
	Err *errors.Error

	mode os.FileMode
}

// Merger writes sourceable shell startup files.
//
// Foreign symlinks are never modified or removed, with one exception: under
// force the merger renames a foreign symlink to a backup path before
// writing the merged file. The link itself is preserved at the backup path.
type Merger struct {
	fs              types.FS
	resolver        *paths.Resolver
	classifier      *ownership.Classifier
	clock           types.Clock
	adoptMaxLines   int
	completionTools []string
	logger          zerolog.Logger
}

// NewMerger creates a Merger. policy supplies the adoption threshold and
// the completion tools whose eval lines get guarded.
func NewMerger(fsys types.FS, resolver *paths.Resolver, classifier *ownership.Classifier, clock types.Clock, policy types.Policy, logger zerolog.Logger) *Merger {
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Merger{
		fs:              fsys,
		resolver:        resolver,
		classifier:      classifier,
		clock:           clock,
		adoptMaxLines:   policy.AdoptMaxLines,
		completionTools: policy.CompletionTools,
		logger:          logger.With().Str("handler", HandlerName).Logger(),
	}
}

// Assess classifies the target, reads it if it is a file and computes the
// content Install would write. It never mutates the filesystem.
func (m *Merger) Assess(spec types.LinkSpec) Plan {
	plan := Plan{
		Spec:       spec,
		SourcePath: m.resolver.SourcePath(spec.Source),
		TargetPath: m.resolver.TargetPath(spec.Target),
		mode:       defaultFileMode,
	}

	if _, err := m.fs.Stat(plan.SourcePath); err != nil {
		if os.IsNotExist(err) {
			plan.Err = errors.New(errors.ErrSourceMissing, "Source file does not exist")
		} else {
			plan.Err = errors.Wrap(err, errors.ErrFilesystemFault, "Failed to inspect source")
		}
		plan.Err.WithDetail("source", plan.SourcePath)
		return plan
	}

	entry, err := m.classifier.ClassifyPath(plan.TargetPath, spec.Source)
	if err != nil {
		plan.Err = errors.Wrap(err, errors.ErrFilesystemFault, "Failed to classify target")
		return plan
	}
	plan.Entry = entry

	switch entry.Kind {
	case ownership.Absent:
		plan.Action = ActionCreate
		plan.Content = Compose(plan.SourcePath, "")
	case ownership.ManagedSymlinkCorrect, ownership.ManagedSymlinkStale:
		plan.Action = ActionConvert
		plan.Content = Compose(plan.SourcePath, "")
	case ownership.ForeignSymlink:
		if spec.Force {
			plan.Action = ActionMoveAside
			plan.Content = Compose(plan.SourcePath, "")
		} else {
			plan.Err = conflict("Target exists as symlink pointing elsewhere", entry)
		}
	case ownership.ApplicationManagedFile, ownership.OrdinaryFile:
		m.assessFile(&plan)
	case ownership.OtherEntry:
		plan.Err = conflict("Target exists and is not a file or symlink", entry)
	}

	return plan
}

func (m *Merger) assessFile(plan *Plan) {
	if info, err := m.fs.Lstat(plan.TargetPath); err == nil {
		plan.mode = info.Mode().Perm()
	}

	data, err := m.fs.ReadFile(plan.TargetPath)
	if err != nil {
		plan.Err = errors.Wrap(err, errors.ErrFilesystemFault, "Failed to read target")
		return
	}
	content := string(data)

	if idx := DirectiveIndex(content, plan.SourcePath); idx >= 0 {
		if idx <= HeaderWindow {
			plan.Action = ActionNone
			return
		}
		plan.Action = ActionReorganize
		m.rebuild(plan, content)
		return
	}

	switch {
	case plan.Spec.Force:
		plan.Action = ActionBackupRebuild
	case m.adoptable(content):
		plan.Action = ActionAdopt
	default:
		plan.Err = conflict("Target exists and has content", plan.Entry).
			WithDetail("directive", DirectiveLine(plan.SourcePath))
		return
	}
	m.rebuild(plan, content)
}

func (m *Merger) rebuild(plan *Plan, previous string) {
	user, fixed := extract(previous, plan.SourcePath, m.completionTools)
	plan.Content = Compose(plan.SourcePath, user)
	plan.Fixed = fixed
}

// adoptable reports whether a file without the directive may be rebuilt
// without force: near-empty files and files that already mention sourcing
// or dotfiles are safe to take over
func (m *Merger) adoptable(content string) bool {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || meaningfulLines(trimmed) <= m.adoptMaxLines {
		return true
	}
	return strings.Contains(trimmed, "source") || strings.Contains(trimmed, "dotfiles")
}

// Install makes spec.Target a sourceable file for spec.Source. It returns
// true when the file is merged, false when the target was refused or a
// filesystem operation failed. Failures are logged, never propagated.
func (m *Merger) Install(spec types.LinkSpec) bool {
	return m.Apply(spec) == nil
}

// Apply is Install with the reason for a failure returned as a coded error
func (m *Merger) Apply(spec types.LinkSpec) error {
	plan := m.Assess(spec)
	logger := m.logger.With().Str("target", plan.TargetPath).Logger()

	if plan.Err != nil {
		logRefusal(logger, plan)
		return plan.Err
	}

	switch plan.Action {
	case ActionNone:
		logger.Info().Msg("File already sources dotfiles")
		return nil
	case ActionConvert:
		logger.Info().Str("current", plan.Entry.LinkValue).Msg("Converting symlink to sourceable file")
		if err := m.fs.Remove(plan.TargetPath); err != nil {
			return m.fault(logger, err, "Failed to remove symlink")
		}
	case ActionMoveAside:
		backupPath, err := backup.Move(m.fs, plan.TargetPath, m.clock)
		if err != nil {
			return m.fault(logger, err, "Failed to move symlink aside")
		}
		logger.Warn().
			Str("current", plan.Entry.LinkValue).
			Str("backup", backupPath).
			Msg("Moved foreign symlink aside")
	case ActionReorganize:
		logger.Info().Msg("Reorganizing file to put dotfiles source at the top")
	case ActionBackupRebuild:
		backupPath, err := backup.Copy(m.fs, plan.TargetPath, m.clock)
		if err != nil {
			return m.fault(logger, err, "Failed to back up target")
		}
		logger.Info().Str("backup", backupPath).Msg("Backed up existing file")
	}

	if err := m.fs.MkdirAll(filepath.Dir(plan.TargetPath), 0755); err != nil {
		return m.fault(logger, err, "Failed to create parent directory")
	}
	if err := m.fs.WriteFile(plan.TargetPath, []byte(plan.Content), plan.mode); err != nil {
		return m.fault(logger, err, "Failed to write sourceable file")
	}

	logging.Success(&logger).Str("source", plan.SourcePath).Msg("Created sourceable file")
	if plan.Fixed {
		logger.Info().Msg("Fixed problematic patterns")
	}
	return nil
}

func (m *Merger) fault(logger zerolog.Logger, err error, msg string) error {
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
			Str("hint", "Re-run with --force to move it aside")
	case ownership.ApplicationManagedFile, ownership.OrdinaryFile:
		if plan.Err.Code == errors.ErrOwnershipConflict {
			event = event.Str("hint", "Use --force to overwrite or manually add: "+DirectiveLine(plan.SourcePath))
		}
	}

	if plan.Err.Code == errors.ErrSourceMissing {
		event = event.Str("source", plan.SourcePath)
	}

	event.Msg(plan.Err.Message)
}
