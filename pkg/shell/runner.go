// Package shell runs post-install commands with an embedded POSIX shell
// interpreter, so commands behave the same whether or not the user's login
// shell is sh-compatible.
package shell

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Runner executes shell commands. Output goes straight to the configured
// writers and is never captured.
type Runner struct {
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logger zerolog.Logger
}

// NewRunner returns a Runner inheriting the process environment and stdio,
// running commands in dir
func NewRunner(dir string, logger zerolog.Logger) *Runner {
	return &Runner{
		Dir:    dir,
		Env:    os.Environ(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Validate parses command without running it
func Validate(command string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(command), ""); err != nil {
		return errors.Wrap(err, errors.ErrCommandParse, "failed to parse command").
			WithDetail("command", command)
	}
	return nil
}

// Run parses and interprets cmd.Command. A non-zero exit is reported as
// ErrCommandFailed with the status in the "exit_code" detail.
func (r *Runner) Run(ctx context.Context, cmd types.ShellCommand) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd.Command), cmd.Description)
	if err != nil {
		return errors.Wrap(err, errors.ErrCommandParse, "failed to parse command").
			WithDetail("command", cmd.Command)
	}

	opts := []interp.RunnerOption{
		interp.StdIO(r.Stdin, r.Stdout, r.Stderr),
		interp.Env(expand.ListEnviron(r.Env...)),
	}
	if r.Dir != "" {
		opts = append(opts, interp.Dir(r.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to create interpreter")
	}

	r.logger.Debug().Str("command", cmd.Command).Str("dir", r.Dir).Msg("Interpreting command")

	if err := runner.Run(ctx, prog); err != nil {
		if exitStatus, ok := interp.IsExitStatus(err); ok {
			return errors.Newf(errors.ErrCommandFailed, "command exited with status %d", int(exitStatus)).
				WithDetail("command", cmd.Command).
				WithDetail("exit_code", int(exitStatus))
		}
		return errors.Wrap(err, errors.ErrCommandFailed, "command failed").
			WithDetail("command", cmd.Command)
	}
	return nil
}
