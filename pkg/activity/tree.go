package activity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tracker/pkg/timeutil"
)

// Separator joins the segments of an activity path.
const Separator = "/"

var (
	// ErrInvalidPath is returned for empty paths, empty segments and segments
	// that collide with the time or timestamp fields.
	ErrInvalidPath = errors.New("invalid activity path")
	// ErrNegativeMinutes is returned when asked to log less than zero minutes.
	ErrNegativeMinutes = errors.New("minutes cannot be negative")
	// ErrNotFound is returned when deleting a path that is not in the tree.
	ErrNotFound = errors.New("entry not found")
	// ErrInvalidTime is returned when a stored time is not a whole number of
	// minutes, so adding to it would lose the value.
	ErrInvalidTime = errors.New("stored time is not a whole number of minutes")
)

// Split breaks an activity path into its segments.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, Separator)
	for _, s := range segments {
		switch s {
		case "":
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		case timeKey, timestampKey:
			return nil, fmt.Errorf("%w: %q uses the reserved name %q", ErrInvalidPath, path, s)
		}
	}
	return segments, nil
}

// AddTime logs minutes against path. Every node along the path, ancestors
// included, accumulates the same minutes. Nodes are created as needed and get
// their timestamp from now the first time they are touched.
func AddTime(tree *Tree, path string, minutes int, now time.Time) error {
	if minutes < 0 {
		return ErrNegativeMinutes
	}
	segments, err := Split(path)
	if err != nil {
		return err
	}

	// Refuse before mutating anything if a segment is taken by a scalar or
	// holds a time that cannot be added to.
	current := tree
	for i, s := range segments {
		c, ok := current.Child(s)
		if !ok {
			if current.Has(s) {
				return fmt.Errorf("%w: %q is not an activity", ErrInvalidPath, strings.Join(segments[:i+1], Separator))
			}
			break
		}
		if raw, bad := c.badTime(); bad {
			return fmt.Errorf("%w: %q has time %s", ErrInvalidTime, strings.Join(segments[:i+1], Separator), raw)
		}
		current = c
	}

	stamp := timeutil.Stamp(now)
	current = tree
	for _, s := range segments {
		current = current.ensureChild(s)
		current.addMinutes(minutes)
		current.stamp(stamp)
	}
	return nil
}

// Find returns the node at path.
func Find(tree *Tree, path string) (*Node, bool) {
	segments, err := Split(path)
	if err != nil {
		return nil, false
	}
	current := tree
	for _, s := range segments {
		c, ok := current.Child(s)
		if !ok {
			return nil, false
		}
		current = c
	}
	return current, true
}

// Deletion describes what Delete removed.
type Deletion struct {
	Path string
	// Removed is true when the node at Path itself existed.
	Removed bool
	// Pruned lists ancestors removed because they were left empty.
	Pruned []string
	// Legacy lists root keys holding a flat path that were removed.
	Legacy []string
	// Swept counts empty mappings removed by the final sweep.
	Swept int
}

type link struct {
	parent *Node
	key    string
}

// Delete removes the node at path. Ancestors left empty are pruned from the
// deepest up, stopping at the first one that still holds something, and the
// whole tree is swept of empty mappings. Flat root keys equal to path or
// nested under it are removed too. Nothing changes when ErrNotFound is
// returned.
func Delete(tree *Tree, path string) (*Deletion, error) {
	segments, err := Split(path)
	if err != nil {
		return nil, err
	}

	var chain []link
	parent := tree
	found := true
	for _, s := range segments[:len(segments)-1] {
		c, ok := parent.Child(s)
		if !ok {
			found = false
			break
		}
		chain = append(chain, link{parent: parent, key: s})
		parent = c
	}

	d := &Deletion{Path: path}
	if found {
		d.Removed = parent.remove(segments[len(segments)-1])
	}

	for _, key := range tree.Keys() {
		if !strings.Contains(key, Separator) {
			continue
		}
		if key == path || strings.HasPrefix(key, path+Separator) {
			tree.remove(key)
			d.Legacy = append(d.Legacy, key)
		}
	}

	if !d.Removed && len(d.Legacy) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}

	if d.Removed {
		for i := len(chain) - 1; i >= 0; i-- {
			l := chain[i]
			if c, ok := l.parent.Child(l.key); !ok || !c.IsEmpty() {
				break
			}
			l.parent.remove(l.key)
			d.Pruned = append(d.Pruned, strings.Join(segments[:i+1], Separator))
		}
	}

	d.Swept = Sweep(tree)
	return d, nil
}

// Sweep removes every empty mapping below n, innermost first, and returns how
// many were removed.
func Sweep(n *Node) int {
	removed := 0
	for _, key := range n.Keys() {
		c, ok := n.Child(key)
		if !ok {
			continue
		}
		removed += Sweep(c)
		if c.IsEmpty() {
			n.remove(key)
			removed++
		}
	}
	return removed
}
