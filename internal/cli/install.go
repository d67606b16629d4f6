package cli

import (
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/install"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/arthur-debert/dotlink/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newInstallCmd(g *globalOptions) *cobra.Command {
	var (
		force      bool
		yes        bool
		formatName string
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(formatName)
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			if force {
				overrides["defaults::force"] = true
			}

			s, err := g.open(cmd, overrides)
			if err != nil {
				return err
			}

			renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if force && !yes && interactive() {
				ok, err := newPrompter().Confirm(MsgConfirmForce, false)
				if err != nil {
					return err
				}
				if !ok {
					return renderer.RenderMessage(MsgInstallCancelled)
				}
			}

			orch, err := s.orchestrator(cmd, format == ui.FormatJSON)
			if err != nil {
				return err
			}

			summary := orch.Run(cmd.Context(), s.config.InstallConfig())
			if err := renderer.RenderResult(display.NewInstallReport(s.root, s.config.Path, summary)); err != nil {
				return err
			}

			return incompleteError(summary)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().StringVar(&formatName, "format", "auto", MsgFlagFormat)

	return cmd
}

// incompleteError turns a partial or failed run into a non-zero exit
func incompleteError(summary install.Summary) error {
	switch summary.Status() {
	case install.StatusSuccess, install.StatusEmpty:
		return nil
	}

	failedCommands := summary.FailedCommands()
	return errors.Newf(errors.ErrInstallIncomplete, MsgErrInstallIncomplete,
		summary.Failed, len(summary.Links), failedCommands, len(summary.Commands)).
		WithDetail("failed_links", summary.Failed).
		WithDetail("failed_commands", failedCommands)
}
