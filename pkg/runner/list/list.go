// Package list prints the activity log.
package list

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/tracker/pkg/printers"
	"tableflip.dev/tracker/pkg/store"
)

// List prints the activity tree.
type List struct {
	Persistence store.Persistence
	Out         io.Writer
	// Document prints the raw stored document instead of the tree.
	Document bool
	// Watch keeps printing the tree each time the log changes, until ctx ends.
	Watch bool
}

func (n *List) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}

	if n.Persistence == nil {
		return errors.New("can not list, no persistence")
	}

	if err := n.print(pp); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		pp.NewLine()
		if ev.Type == store.EventLogRemoved {
			pp.Warn("%s was removed", ev.Path)
			continue
		}
		pp.Title(time.Now().Format(time.Kitchen) + " " + ev.Type.String())
		if err := n.print(pp); err != nil {
			return err
		}
	}
	return nil
}

func (n *List) print(pp printers.PrettyPrint) error {
	tree, err := store.LoadOrWarn(n.Persistence, pp.Writer())
	if err != nil {
		return err
	}
	if n.Document {
		return pp.Document(tree)
	}
	pp.Tree(tree)
	return nil
}
