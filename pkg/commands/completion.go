package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/commands/options"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(tracker completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(tracker completion)
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return topLevel.GenBashCompletion(cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

// activityCompletions lists the known activity paths starting with toComplete.
func activityCompletions(g *options.GlobalOptions, toComplete string) []string {
	_, p, err := open(g)
	if err != nil {
		return nil
	}
	tree, err := p.Load()
	if err != nil {
		return nil
	}
	var paths []string
	for _, path := range activity.Paths(tree) {
		if strings.HasPrefix(path, toComplete) {
			paths = append(paths, path)
		}
	}
	return paths
}
