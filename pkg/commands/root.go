package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/tracker/pkg/commands/options"
	"tableflip.dev/tracker/pkg/runner/add"
	"tableflip.dev/tracker/pkg/runner/list"
	"tableflip.dev/tracker/pkg/runner/remove"
	"tableflip.dev/tracker/pkg/runner/timer"
)

func dispatch(cmd *cobra.Command, args []string, ao *options.ActivityOptions, oo *options.OutputOptions, g *options.GlobalOptions) error {
	action := ao.Action(cmd)
	if action == options.ActionHelp {
		return cmd.Help()
	}
	cmd.SilenceUsage = true

	cfg, p, err := open(g)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch action {
	case options.ActionTimer:
		ctx, stop := interruptible(cmd.Context())
		defer stop()
		t := timer.Timer{
			Activity:    ao.Timer,
			Persistence: p,
			Out:         out,
			Frames:      cfg.Frames,
			Interval:    cfg.Interval,
			Animate:     isTerminal(out),
		}
		return t.Do(ctx)

	case options.ActionAdd:
		a := add.Add{
			Activity:    ao.Add,
			Minutes:     args[0],
			Persistence: p,
			Out:         out,
		}
		return a.Do(cmd.Context())

	case options.ActionList:
		ctx, stop := interruptible(cmd.Context())
		defer stop()
		l := list.List{
			Persistence: p,
			Out:         out,
			Document:    oo.JSON,
			Watch:       ao.Watch,
		}
		return l.Do(ctx)

	case options.ActionDelete:
		r := remove.Remove{
			Prompt:      promptPath(cmd),
			Persistence: p,
			Out:         out,
		}
		if len(args) == 1 {
			r.Path = args[0]
		}
		return r.Do(cmd.Context())
	}
	return nil
}

// interruptible is cancelled on Ctrl+C or SIGTERM.
func interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
