package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tracker/pkg/commands/options"
	"tableflip.dev/tracker/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command, g *options.GlobalOptions) {
	io := &options.InfoOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the activity log and where it is stored.",
		Example: `
tracker info
tracker info --since 3d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			since, err := io.GetSince()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			cfg, p, err := open(g)
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      cfg,
				Persistence: p,
				Out:         cmd.OutOrStdout(),
				Since:       since,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddInfoArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
