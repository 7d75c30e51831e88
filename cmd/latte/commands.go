package latte

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/latte/pkg/commands"
	"github.com/arthur-debert/latte/pkg/config"
)

// installedCompletion completes the names of installed packages
func (a *app) installedCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if a.env == nil {
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}

	packages, err := a.env.Installer.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// nicknameCompletion completes registered repository nicknames
func (a *app) nicknameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if a.env == nil {
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}

	reg, _, err := a.env.Store.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var nicknames []string
	for _, repo := range reg.List() {
		nicknames = append(nicknames, repo.Nickname)
	}
	return nicknames, cobra.ShellCompDirectiveNoFileComp
}

func newInstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "install <[nickname/]package>",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandInstall, commands.DispatchOptions{Argument: args[0]})
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <[nickname/]package>",
		Short:   MsgUpdateShort,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandUpdate, commands.DispatchOptions{Argument: args[0]})
		},
	}
	cmd.ValidArgsFunction = a.installedCompletion
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <package>",
		Aliases: []string{"rm", "uninstall"},
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandRemove, commands.DispatchOptions{Argument: args[0]})
		},
	}
	cmd.ValidArgsFunction = a.installedCompletion
	return cmd
}

func newNewCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "new <package>",
		Short:   MsgNewShort,
		Long:    MsgNewLong,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}
			return a.run(cmd, commands.CommandNew, commands.DispatchOptions{Argument: args[0], WorkDir: dir})
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", MsgFlagDir)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "packages",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandList, commands.DispatchOptions{})
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "info <package>",
		Short:   MsgInfoShort,
		GroupID: "packages",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandInfo, commands.DispatchOptions{Argument: args[0]})
		},
	}
	cmd.ValidArgsFunction = a.installedCompletion
	return cmd
}

func newAddRepoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add-repo <url>",
		Aliases: []string{"addrepo"},
		Short:   MsgAddRepoShort,
		Long:    MsgAddRepoLong,
		GroupID: "repos",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandAddRepo, commands.DispatchOptions{Argument: args[0]})
		},
	}
}

func newDelRepoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "del-repo <nickname>",
		Aliases: []string{"delrepo"},
		Short:   MsgDelRepoShort,
		GroupID: "repos",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, commands.CommandDelRepo, commands.DispatchOptions{Argument: args[0]})
		},
	}
	cmd.ValidArgsFunction = a.nicknameCompletion
	return cmd
}

func newListReposCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list-repos [all|nickname]",
		Aliases: []string{"listrepo"},
		Short:   MsgListReposShort,
		Long:    MsgListReposLong,
		GroupID: "repos",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := commands.ListAll
			if len(args) == 1 {
				pattern = args[0]
			}
			return a.run(cmd, commands.CommandListRepos, commands.DispatchOptions{Argument: pattern})
		},
	}
	cmd.ValidArgsFunction = a.nicknameCompletion
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var template bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			out, err := config.Dump(a.env.Config)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
