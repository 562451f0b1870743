// Package stopwatch times an activity until it is cancelled and commits the
// elapsed whole minutes.
package stopwatch

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/tracker/pkg/timeutil"
)

// State of a Stopwatch.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrAlreadyStarted is returned when Run is called on a stopwatch that is not
// idle. A stopwatch runs once.
var ErrAlreadyStarted = errors.New("stopwatch already started")

// Animation blocks until ctx is done.
type Animation interface {
	Run(ctx context.Context) int
}

// CommitFunc records minutes against an activity.
type CommitFunc func(activity string, minutes int) error

// Result of a finished run.
type Result struct {
	Activity string
	Started  time.Time
	Elapsed  time.Duration
	// Minutes is Elapsed truncated to whole minutes.
	Minutes int
}

// Stopwatch measures wall clock time for a single activity.
type Stopwatch struct {
	Activity  string
	Animation Animation
	Commit    CommitFunc
	// Now defaults to time.Now.
	Now func() time.Time

	state State
}

// State returns the current state.
func (s *Stopwatch) State() State {
	return s.state
}

// Run starts timing, drives the animation until ctx is cancelled, then
// commits the elapsed whole minutes exactly once. Under a minute commits zero.
func (s *Stopwatch) Run(ctx context.Context) (*Result, error) {
	if s.state != Idle {
		return nil, ErrAlreadyStarted
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	s.state = Running
	started := now()

	if s.Animation != nil {
		s.Animation.Run(ctx)
	} else {
		<-ctx.Done()
	}

	elapsed := now().Sub(started)
	s.state = Stopped

	r := &Result{
		Activity: s.Activity,
		Started:  started,
		Elapsed:  elapsed,
		Minutes:  timeutil.WholeMinutes(elapsed),
	}
	if s.Commit != nil {
		if err := s.Commit(s.Activity, r.Minutes); err != nil {
			return r, err
		}
	}
	return r, nil
}
