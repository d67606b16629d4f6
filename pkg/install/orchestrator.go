package install

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/handlers/sourceable"
	"github.com/arthur-debert/dotlink/pkg/handlers/symlink"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/ownership"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// CommandRunner executes one post-install shell command
type CommandRunner interface {
	Run(ctx context.Context, cmd types.ShellCommand) error
}

// Options configures an Orchestrator
type Options struct {
	Resolver *paths.Resolver
	Policy   types.Policy
	Runner   CommandRunner
	// Logger defaults to the global logger tagged component=install
	Logger   *zerolog.Logger

	// FS and Clock default to the real filesystem and wall clock
	FS    types.FS
	Clock types.Clock
}

// Orchestrator routes each configured target to the right installer
type Orchestrator struct {
	fs       types.FS
	resolver *paths.Resolver
	policy   types.Policy
	runner   CommandRunner
	logger   zerolog.Logger

	symlinks *symlink.Installer
	merger   *sourceable.Merger
}

// New creates an Orchestrator
func New(opts Options) (*Orchestrator, error) {
	if opts.Resolver == nil {
		return nil, errors.New(errors.ErrInvalidInput, "install requires a path resolver")
	}

	logger := logging.GetLogger("install")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	clock := opts.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}

	policy := withDefaults(opts.Policy)

	classifier := ownership.NewClassifier(fsys, opts.Resolver, clock, policy.RecentWindow, logger)

	return &Orchestrator{
		fs:       fsys,
		resolver: opts.Resolver,
		policy:   policy,
		runner:   opts.Runner,
		logger:   logger,
		symlinks: symlink.NewInstaller(fsys, opts.Resolver, classifier, clock, logger),
		merger:   sourceable.NewMerger(fsys, opts.Resolver, classifier, clock, policy, logger),
	}, nil
}

// withDefaults fills every unset policy field from types.DefaultPolicy
func withDefaults(policy types.Policy) types.Policy {
	defaults := types.DefaultPolicy()
	if policy.RecentWindow <= 0 {
		policy.RecentWindow = defaults.RecentWindow
	}
	if policy.SourceableFiles == nil {
		policy.SourceableFiles = defaults.SourceableFiles
	}
	if policy.AdoptMaxLines <= 0 {
		policy.AdoptMaxLines = defaults.AdoptMaxLines
	}
	if policy.CompletionTools == nil {
		policy.CompletionTools = defaults.CompletionTools
	}
	return policy
}

// IsSourceable reports whether target is handled by the sourceable merger
func (o *Orchestrator) IsSourceable(target string) bool {
	for _, name := range o.policy.SourceableFiles {
		if name != "" && strings.Contains(target, name) {
			return true
		}
	}
	return false
}

// Run executes the three install phases and summarizes the outcome
func (o *Orchestrator) Run(ctx context.Context, cfg types.InstallConfig) Summary {
	defer logging.LogOperationStart(o.logger, "install")()
	o.logger.Info().Msg("Installing symlinks...")

	var summary Summary

	for _, dir := range cfg.Directories {
		start := time.Now()
		err := o.EnsureDirectory(dir)
		summary.Directories = append(summary.Directories, newResult(dir, "directory", err, start))
	}

	for _, spec := range sortedSpecs(cfg) {
		start := time.Now()
		handler, err := o.installLink(spec)
		result := newResult(spec.Target, handler, err, start)
		result.Source = spec.Source
		summary.Links = append(summary.Links, result)
		if result.Success {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	for _, cmd := range cfg.ShellCommands {
		start := time.Now()
		result := newResult(cmd.Description, "command", o.runCommand(ctx, cmd), start)
		result.Source = cmd.Command
		summary.Commands = append(summary.Commands, result)
	}

	o.logger.Info().
		Int("created", summary.Succeeded).
		Int("failed", summary.Failed).
		Msgf("Symlinks: %d created, %d failed", summary.Succeeded, summary.Failed)

	return summary
}

func (o *Orchestrator) installLink(spec types.LinkSpec) (string, error) {
	if o.IsSourceable(spec.Target) {
		return sourceable.HandlerName, o.merger.Apply(spec)
	}
	return symlink.HandlerName, o.symlinks.Apply(spec)
}

// EnsureDirectory creates dir (home-relative forms allowed) unless it exists
func (o *Orchestrator) EnsureDirectory(dir string) error {
	path := o.resolver.TargetPath(dir)
	logger := o.logger.With().Str("directory", path).Logger()

	if _, err := o.fs.Stat(path); err == nil {
		logger.Info().Msg("Directory already exists")
		return nil
	} else if !os.IsNotExist(err) {
		logger.Error().Err(err).Msg("Failed to inspect directory")
		return errors.Wrap(err, errors.ErrFilesystemFault, "failed to inspect directory")
	}

	if err := o.fs.MkdirAll(path, 0755); err != nil {
		logger.Error().Err(err).Msg("Failed to create directory")
		return errors.Wrap(err, errors.ErrFilesystemFault, "failed to create directory")
	}

	logging.Success(&logger).Msg("Created directory")
	return nil
}

func (o *Orchestrator) runCommand(ctx context.Context, cmd types.ShellCommand) error {
	logger := o.logger.With().Str("command", cmd.Command).Logger()

	if o.runner == nil {
		logger.Error().Str("description", cmd.Description).Msg("No command runner configured")
		return errors.New(errors.ErrCommandFailed, "no command runner configured")
	}

	logger.Info().Msgf("Running: %s", cmd.Description)
	if err := o.runner.Run(ctx, cmd); err != nil {
		logger.Error().Err(err).Msgf("Failed to execute: %s", cmd.Description)
		return err
	}

	logging.Success(&logger).Msgf("Completed: %s", cmd.Description)
	return nil
}

// Plan assesses every link without touching the filesystem
func (o *Orchestrator) Plan(cfg types.InstallConfig) []PlanEntry {
	specs := sortedSpecs(cfg)
	entries := make([]PlanEntry, 0, len(specs))

	for _, spec := range specs {
		var entry PlanEntry
		if o.IsSourceable(spec.Target) {
			plan := o.merger.Assess(spec)
			entry = newPlanEntry(spec, sourceable.HandlerName, plan.SourcePath, plan.TargetPath, plan.Entry, plan.Action.String(), plan.Err)
			entry.UpToDate = plan.Err == nil && plan.Action == sourceable.ActionNone
		} else {
			plan := o.symlinks.Assess(spec)
			entry = newPlanEntry(spec, symlink.HandlerName, plan.SourcePath, plan.TargetPath, plan.Entry, plan.Action.String(), plan.Err)
			entry.UpToDate = plan.Err == nil && plan.Action == symlink.ActionNone
		}
		entries = append(entries, entry)
	}

	return entries
}

// sortedSpecs returns the link specs ordered by target so runs log
// deterministically
func sortedSpecs(cfg types.InstallConfig) []types.LinkSpec {
	specs := cfg.Specs()
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Target < specs[j].Target
	})
	return specs
}
