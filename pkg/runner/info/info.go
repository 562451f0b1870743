// Package info describes where the activity log lives and what it holds.
package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gosuri/uitable"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/printers"
	"tableflip.dev/tracker/pkg/store"
	"tableflip.dev/tracker/pkg/timeutil"
)

type Info struct {
	Config      *store.Config
	Persistence store.Persistence
	Out         io.Writer
	// Since is the look-back for counting recently created activities.
	Since time.Duration
	Now   func() time.Time
}

func (n *Info) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}

	if override := os.Getenv("TRACKER_CONFIG_PATH"); override != "" {
		pp.Println("TRACKER_CONFIG_PATH found on env, using", override)
	} else {
		pp.Println("TRACKER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig("")
		if err != nil {
			return err
		}
	}
	if n.Config.Source != "" {
		pp.Println("Config file:", n.Config.Source)
	}

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}
	pp.Println("Activity log:", n.Persistence.Path())

	tree, err := store.LoadOrWarn(n.Persistence, pp.Writer())
	if err != nil {
		return err
	}
	pp.NewLine()

	if tree.IsEmpty() {
		pp.Println("  no activities")
		return nil
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	since := n.Since
	if since <= 0 {
		since, _, _ = timeutil.ParseWindow(timeutil.DefaultWindow)
	}
	cutoff := now().Add(-since)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("ACTIVITY", "TIME", "ENTRIES", "NEW")

	total, count, recent := 0, 0, 0
	for _, key := range tree.Keys() {
		top, ok := tree.Child(key)
		if !ok {
			continue
		}
		entries, fresh := 1, created(top, cutoff)
		for _, e := range activity.Walk(top) {
			entries++
			fresh += created(e.Node, cutoff)
		}
		tbl.AddRow(key, timeutil.FormatMinutes(top.Time()), entries, fresh)
		total += top.Time()
		count += entries
		recent += fresh
	}
	pp.Println(tbl)
	pp.NewLine()
	pp.Printf("%d activities, %s logged, %d new in the last %s.\n",
		count, timeutil.FormatMinutes(total), recent, timeutil.FormatWindow(since))
	return nil
}

// created is 1 when the node was first logged after cutoff.
func created(n *activity.Node, cutoff time.Time) int {
	ts, err := timeutil.ParseStamp(n.Timestamp())
	if err != nil || ts.Before(cutoff) {
		return 0
	}
	return 1
}
