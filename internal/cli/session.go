package cli

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/install"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/shell"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// session is the resolved root and configuration of one command run
type session struct {
	root     string
	config   *config.Config
	resolver *paths.Resolver
}

// open resolves the dotfiles root, loads the configuration and checks that
// every shell command parses before anything is touched
func (g *globalOptions) open(cmd *cobra.Command, overrides map[string]interface{}) (*session, error) {
	root, fallback, err := paths.FindSourceRoot(g.root)
	if err != nil {
		return nil, err
	}
	if fallback {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), MsgFallbackWarning)
	}

	cfg, err := config.Load(config.LoadOptions{
		Root:      root,
		File:      g.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}

	resolver, err := paths.NewResolver(root, "")
	if err != nil {
		return nil, err
	}

	for _, c := range cfg.InstallConfig().ShellCommands {
		if err := shell.Validate(c.Command); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("dotfiles_root", resolver.SourceRoot()).
		Str("config", cfg.Path).
		Int("links", len(cfg.Links)).
		Msg("Configuration loaded")

	return &session{root: resolver.SourceRoot(), config: cfg, resolver: resolver}, nil
}

// orchestrator builds the installer. Command output goes to stdout, or to
// stderr when stdout carries machine-readable output.
func (s *session) orchestrator(cmd *cobra.Command, machineOutput bool) (*install.Orchestrator, error) {
	var out io.Writer = cmd.OutOrStdout()
	if machineOutput {
		out = cmd.ErrOrStderr()
	}

	runner := shell.NewRunner(s.root, logging.GetLogger("shell"))
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = out
	runner.Stderr = cmd.ErrOrStderr()

	logger := logging.GetLogger("install")
	return install.New(install.Options{
		Resolver: s.resolver,
		Policy:   s.config.PolicyValues(),
		Runner:   runner,
		Logger:   &logger,
	})
}
