// Package timer runs the live stopwatch for an activity.
package timer

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/printers"
	"tableflip.dev/tracker/pkg/runner/log"
	"tableflip.dev/tracker/pkg/stopwatch"
	"tableflip.dev/tracker/pkg/store"
)

// Timer times Activity until the context is cancelled, usually by Ctrl+C,
// and logs the elapsed whole minutes.
type Timer struct {
	Activity    string
	Persistence store.Persistence
	Out         io.Writer

	Frames   []string
	Interval time.Duration
	// Animate draws the spinner; off when Out is not a terminal.
	Animate bool

	Now func() time.Time
}

func (n *Timer) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}

	if n.Persistence == nil {
		return errors.New("can not time, no persistence")
	}
	if _, err := activity.Split(n.Activity); err != nil {
		pp.Error(err)
		return nil
	}

	pp.Printf("Starting timer for %s. Press Ctrl+C to stop.\n", n.Activity)

	l := log.Log{Persistence: n.Persistence, Out: n.Out, Now: n.Now}
	sw := stopwatch.Stopwatch{
		Activity: n.Activity,
		Animation: &printers.Spinner{
			Out:      n.Out,
			Frames:   n.Frames,
			Interval: n.Interval,
			Animate:  n.Animate,
		},
		Commit: l.Minutes,
		Now:    n.Now,
	}

	r, err := sw.Run(ctx)
	pp.NewLine()
	if err != nil {
		pp.Error(err)
		return nil
	}
	pp.Printf("Stopped timer. Logged %d minutes for %s.\n", r.Minutes, n.Activity)
	return nil
}
