package options

import (
	"github.com/spf13/cobra"
)

// GlobalOptions are persistent flags shared by every command.
type GlobalOptions struct {
	Debug     bool
	ConfigDir string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().BoolVar(&o.Debug, "debug", false,
		"Log diagnostics to stderr.")
	cmd.PersistentFlags().StringVar(&o.ConfigDir, "config", "",
		Help("Directory holding a .tracker.yaml to use before $TRACKER_CONFIG_PATH, $HOME and the working directory."))
}
