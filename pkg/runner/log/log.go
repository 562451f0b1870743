// Package log commits minutes to the persisted activity log.
package log

import (
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/store"
)

// ErrSave wraps failures to persist the activity log.
var ErrSave = errors.New("unable to save activity log")

// Log records minutes against activities. Each call is a full
// load, mutate and save of the log.
type Log struct {
	Persistence store.Persistence
	// Out receives the corruption warning, if any.
	Out io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Minutes adds minutes to activity and to each of its ancestors.
func (l *Log) Minutes(activityPath string, minutes int) error {
	if l.Persistence == nil {
		return errors.New("can not log, no persistence")
	}
	now := l.Now
	if now == nil {
		now = time.Now
	}
	out := l.Out
	if out == nil {
		out = io.Discard
	}

	tree, err := store.LoadOrWarn(l.Persistence, out)
	if err != nil {
		return err
	}
	if err := activity.AddTime(tree, activityPath, minutes, now()); err != nil {
		return err
	}
	if err := l.Persistence.Save(tree); err != nil {
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	return nil
}
