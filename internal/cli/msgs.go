package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Install a dotfiles repository into your home directory"
	MsgInstallShort    = "Create directories, install links and run setup commands"
	MsgStatusShort     = "Show what install would do, without changing anything"
	MsgConfigShort     = "Manage the dotlink configuration"
	MsgConfigInitShort = "Write a starter configuration file"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	MsgInstallCancelled = "Install cancelled."
	MsgConfirmForce     = "Replace existing files and stale links? Originals are backed up first."
	MsgConfigWritten    = "Wrote %s"
	MsgAskFormat        = "Config file format"
	MsgAskSourceable    = "Shell files to merge instead of symlink"

	MsgErrInstallIncomplete = "%d of %d links failed, %d of %d commands failed"

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot      = "Dotfiles root (default: $DOTFILES_ROOT, the git root, or the current directory)"
	MsgFlagConfig    = "Config file (default: dotlink.toml at the root, then $XDG_CONFIG_HOME/dotlink/config.toml)"
	MsgFlagForce     = "Back up and replace files you own and stale links"
	MsgFlagYes       = "Do not ask for confirmation"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagCommented = "Write every value commented out"
	MsgFlagOverwrite = "Replace an existing config file"
	MsgFlagUser      = "Write the per-user config instead of one at the dotfiles root"
	MsgFlagCfgFormat = "Config file format: toml or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
