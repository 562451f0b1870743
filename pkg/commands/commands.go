package commands

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tableflip.dev/tracker/pkg/commands/options"
	"tableflip.dev/tracker/pkg/store"
)

func New() *cobra.Command {
	ao := &options.ActivityOptions{}
	oo := &options.OutputOptions{}
	g := &options.GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "tracker",
		Short: options.Help("Track time spent on activities and their categories."),
		Long: options.Help(`Track time spent on activities. Activities are slash separated
paths like linux/unixhndbk/chapter-1; time logged on an activity also counts for
every category above it.`),
		Example: `
tracker --timer linux/unixhndbk/chapter-1
tracker --add music/piano 30
tracker --list
tracker --delete music/piano
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return ao.ValidateArgs(cmd, args)
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.Debug {
				log.SetLevel(log.DebugLevel)
			}
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if ao.Action(cmd) != options.ActionDelete || len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return activityCompletions(g, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, args, ao, oo, g)
		},
	}

	options.AddActivityArgs(cmd, ao)
	options.AddOutputArg(cmd, oo)
	options.AddGlobalArgs(cmd, g)

	for _, name := range []string{"timer", "add"} {
		_ = cmd.RegisterFlagCompletionFunc(name, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return activityCompletions(g, toComplete), cobra.ShellCompDirectiveNoFileComp
		})
	}

	AddCommands(cmd, g)
	return cmd
}

// Execute runs cmd over the command line args.
func Execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(options.PositionalMinutes(args))
	return cmd.ExecuteContext(ctx)
}

func AddCommands(topLevel *cobra.Command, g *options.GlobalOptions) {
	addInfo(topLevel, g)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// open resolves the configuration and the activity log it points at.
func open(g *options.GlobalOptions) (*store.Config, store.Persistence, error) {
	cfg, err := store.LoadConfig(g.ConfigDir)
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}
