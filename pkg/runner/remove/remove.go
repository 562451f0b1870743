// Package remove deletes an activity and prunes what it leaves empty.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/printers"
	"tableflip.dev/tracker/pkg/runner/log"
	"tableflip.dev/tracker/pkg/store"
)

// PromptFunc asks the user for the activity path to delete.
type PromptFunc func() (string, error)

// Remove deletes Path, or the path returned by Prompt when Path is empty.
type Remove struct {
	Path        string
	Prompt      PromptFunc
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Remove) Do(_ context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}

	if n.Persistence == nil {
		return errors.New("can not delete, no persistence")
	}

	path := strings.TrimSpace(n.Path)
	if path == "" {
		if n.Prompt == nil {
			return errors.New("can not delete, no path and no prompt")
		}
		var err error
		if path, err = n.Prompt(); err != nil {
			return err
		}
		path = strings.TrimSpace(path)
	}

	tree, err := store.LoadOrWarn(n.Persistence, pp.Writer())
	if err != nil {
		return err
	}

	d, err := activity.Delete(tree, path)
	switch {
	case errors.Is(err, activity.ErrNotFound):
		pp.Printf("Entry '%s' not found.\n", path)
		return nil
	case err != nil:
		pp.Error(err)
		return nil
	}

	if err := n.Persistence.Save(tree); err != nil {
		pp.Error(fmt.Errorf("%w: %v", log.ErrSave, err))
		return nil
	}

	pp.Printf("Deleted entry '%s' and its subentries.\n", path)
	for _, p := range d.Pruned {
		pp.Printf("Removed empty parent '%s'.\n", p)
	}
	for _, k := range d.Legacy {
		if k != path {
			pp.Printf("Removed legacy entry '%s'.\n", k)
		}
	}
	return nil
}
