package cli

import (
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/arthur-debert/dotlink/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newStatusCmd(g *globalOptions) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(formatName)
			if err != nil {
				return err
			}

			s, err := g.open(cmd, nil)
			if err != nil {
				return err
			}

			orch, err := s.orchestrator(cmd, format == ui.FormatJSON)
			if err != nil {
				return err
			}

			renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			entries := orch.Plan(s.config.InstallConfig())
			return renderer.RenderResult(display.NewStatusReport(s.root, s.config.Path, entries))
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "auto", MsgFlagFormat)

	return cmd
}
