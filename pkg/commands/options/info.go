package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tracker/pkg/timeutil"
)

// InfoOptions
type InfoOptions struct {
	Since string
}

func AddInfoArgs(cmd *cobra.Command, o *InfoOptions) {
	cmd.Flags().StringVar(&o.Since, "since", timeutil.DefaultWindow,
		`Count activities created within this window, example: --since=3d or --since=1w2d.`)
}

func (o *InfoOptions) GetSince() (time.Duration, error) {
	d, _, err := timeutil.ParseWindow(o.Since)
	return d, err
}
