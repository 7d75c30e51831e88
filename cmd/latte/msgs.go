package latte

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A minimal package manager for Python scripts"
	MsgInstallShort    = "Download and install a package"
	MsgUpdateShort     = "Reinstall an installed package from its repository"
	MsgRemoveShort     = "Remove an installed package"
	MsgNewShort        = "Create a new package template"
	MsgListShort       = "List installed packages"
	MsgInfoShort       = "Show the metadata of an installed package"
	MsgAddRepoShort    = "Register a repository"
	MsgDelRepoShort    = "Unregister a repository"
	MsgListReposShort  = "List registered repositories"
	MsgListReposLong   = "List-repos prints every registered repository, or only the one named by NICKNAME. 'all' is the same as no argument."
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInterrupted = "Interrupted, exiting"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration"
	MsgErrInitPaths  = "failed to initialize paths"
	MsgErrNoCommand  = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagConfig   = "Configuration file (default is $XDG_CONFIG_HOME/latte/config.toml)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagDir      = "Directory to create the package in"
	MsgFlagTemplate = "Print a commented configuration template instead"
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

	//go:embed msgs/remove-long.txt
	msgRemoveLongRaw string
	MsgRemoveLong    = strings.TrimSpace(msgRemoveLongRaw)

	//go:embed msgs/new-long.txt
	msgNewLongRaw string
	MsgNewLong    = strings.TrimSpace(msgNewLongRaw)

	//go:embed msgs/add-repo-long.txt
	msgAddRepoLongRaw string
	MsgAddRepoLong    = strings.TrimSpace(msgAddRepoLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
