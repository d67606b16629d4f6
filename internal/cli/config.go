package cli

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "core",
	}
	cmd.AddCommand(newConfigInitCmd(g))
	return cmd
}

func newConfigInitCmd(g *globalOptions) *cobra.Command {
	var (
		format    string
		commented bool
		overwrite bool
		user      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Long:  MsgConfigInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.StarterOptions{Format: format, Commented: commented}
			switch {
			case opts.Format != "":
			case g.configFile != "":
				opts.Format = config.FormatForPath(g.configFile)
			case user:
				opts.Format = config.FormatTOML
			}

			if interactive() {
				p := newPrompter()
				if opts.Format == "" {
					chosen, err := p.Select(MsgAskFormat, []string{config.FormatTOML, config.FormatYAML}, config.FormatTOML)
					if err != nil {
						return err
					}
					opts.Format = chosen
				}

				defaults := types.DefaultPolicy().SourceableFiles
				files, err := p.MultiSelect(MsgAskSourceable, defaults, defaults)
				if err != nil {
					return err
				}
				opts.SourceableFiles = files
			}
			if opts.Format == "" {
				opts.Format = config.FormatTOML
			}

			path, err := g.starterPath(opts.Format, user)
			if err != nil {
				return err
			}

			if err := config.WriteStarter(path, opts, overwrite); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", path)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", MsgFlagCfgFormat)
	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagCommented)
	cmd.Flags().BoolVar(&overwrite, "force", false, MsgFlagOverwrite)
	cmd.Flags().BoolVar(&user, "user", false, MsgFlagUser)

	return cmd
}

// starterPath picks where config init writes: --config, the per-user file,
// or dotlink.<format> at the dotfiles root
func (g *globalOptions) starterPath(format string, user bool) (string, error) {
	if format != config.FormatTOML && format != config.FormatYAML {
		return "", errors.Newf(errors.ErrInvalidInput, "unsupported config format %q", format).
			WithDetail("format", format)
	}

	switch {
	case g.configFile != "":
		return g.configFile, nil
	case user:
		if format != config.FormatTOML {
			return "", errors.New(errors.ErrInvalidInput, "the per-user config file is always TOML")
		}
		return paths.UserConfigPath(), nil
	}

	root, _, err := paths.FindSourceRoot(g.root)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "dotlink."+format), nil
}
