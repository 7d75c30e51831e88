package latte

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/latte/internal/version"
	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/config"
	"github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/filesystem"
	"github.com/arthur-debert/latte/pkg/logging"
	"github.com/arthur-debert/latte/pkg/paths"
	"github.com/arthur-debert/latte/pkg/ui"
)

// app holds what PersistentPreRunE prepares for the subcommands
type app struct {
	verbosity  int
	noColor    bool
	configFile string
	format     string

	env    *commands.Env
	out    ui.Renderer
	errOut ui.Renderer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *app) {
	initTemplateFormatting()
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "latte",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "packages", Title: "PACKAGES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "repos", Title: "REPOSITORIES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(a))
	rootCmd.AddCommand(newUpdateCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newNewCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newAddRepoCmd(a))
	rootCmd.AddCommand(newDelRepoCmd(a))
	rootCmd.AddCommand(newListReposCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd, a
}

// setup loads the configuration and builds the command environment
func (a *app) setup(cmd *cobra.Command) error {
	format, err := ui.Choose(a.format, a.noColor, asFile(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	if a.out, err = ui.NewRenderer(format, cmd.OutOrStdout()); err != nil {
		return err
	}
	if a.errOut, err = ui.NewRenderer(format, cmd.ErrOrStderr()); err != nil {
		return err
	}

	configFile := a.configFile
	if configFile == "" {
		configFile = filepath.Join(paths.DefaultConfigDir(), paths.ConfigFileName)
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, MsgErrLoadConfig)
	}

	p, err := paths.New(cfg.PathOptions())
	if err != nil {
		return errors.Wrap(err, errors.ErrFilesystem, MsgErrInitPaths)
	}

	logging.SetupLoggerWithWriter(a.verbosity, p.LogFilePath(), cmd.ErrOrStderr())
	log.Debug().
		Str("command", cmd.Name()).
		Str("config", configFile).
		Str("registry", p.RegistryFile()).
		Msg("Command started")

	a.env = commands.NewEnv(cfg, p, filesystem.NewOS())
	return nil
}

// run dispatches cmdType and renders its result. Warnings gathered before a
// failure are still shown.
func (a *app) run(cmd *cobra.Command, cmdType commands.CommandType, opts commands.DispatchOptions) error {
	res, err := commands.Dispatch(cmd.Context(), cmdType, a.env, opts)
	if err != nil {
		if res != nil {
			for _, w := range res.Warnings {
				_ = a.out.RenderWarning(w)
			}
		}
		return err
	}
	return a.out.RenderResult(res)
}

// errRenderer returns the configured error renderer, or a plain text one
// when the failure happened before setup
func (a *app) errRenderer(cmd *cobra.Command) ui.Renderer {
	if a.errOut != nil {
		return a.errOut
	}
	r, _ := ui.NewRenderer(ui.FormatText, cmd.ErrOrStderr())
	return r
}

func asFile(w interface{}) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}

// Exit codes
const (
	ExitOK          = 0
	ExitError       = 1
	ExitInterrupted = 130
)

// Execute runs the command line in args and returns the process exit code.
// Cancelling ctx aborts the running command.
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case ctx.Err() != nil:
		_ = a.errRenderer(rootCmd).RenderWarning(MsgInterrupted)
		return ExitInterrupted
	default:
		_ = a.errRenderer(rootCmd).RenderError(err)
		return ExitError
	}
}
