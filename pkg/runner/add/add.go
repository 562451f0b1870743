// Package add logs a manually entered number of minutes.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/printers"
	"tableflip.dev/tracker/pkg/runner/log"
	"tableflip.dev/tracker/pkg/store"
)

// Add adds Minutes, given as typed by the user, to Activity.
type Add struct {
	Activity    string
	Minutes     string
	Persistence store.Persistence
	Out         io.Writer
	Now         func() time.Time
}

// Do validates the input and logs the minutes. Bad input and save failures
// are reported on Out and nothing is changed.
func (n *Add) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}

	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(n.Minutes))
	if err != nil {
		pp.Error(fmt.Errorf("invalid minutes %q, expected a whole number", n.Minutes))
		return nil
	}
	if minutes < 0 {
		pp.Error(activity.ErrNegativeMinutes)
		return nil
	}
	if _, err := activity.Split(n.Activity); err != nil {
		pp.Error(err)
		return nil
	}

	l := log.Log{Persistence: n.Persistence, Out: n.Out, Now: n.Now}
	if err := l.Minutes(n.Activity, minutes); err != nil {
		pp.Error(err)
		return nil
	}
	pp.Printf("Added %d minutes to %s.\n", minutes, n.Activity)
	return nil
}
