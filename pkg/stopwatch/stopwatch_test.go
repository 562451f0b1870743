package stopwatch

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock advances by step on every call after the first.
type fakeClock struct {
	t    time.Time
	step time.Duration
	n    int
}

func (c *fakeClock) Now() time.Time {
	if c.n > 0 {
		c.t = c.t.Add(c.step)
	}
	c.n++
	return c.t
}

type recordingAnimation struct {
	ran int
}

func (a *recordingAnimation) Run(ctx context.Context) int {
	a.ran++
	<-ctx.Done()
	return 0
}

func cancelled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestRunCommitsTruncatedMinutes(t *testing.T) {
	tests := map[string]struct {
		elapsed time.Duration
		want    int
	}{
		"under a minute": {elapsed: 59 * time.Second, want: 0},
		"exact":          {elapsed: 3 * time.Minute, want: 3},
		"truncates":      {elapsed: 3*time.Minute + 59*time.Second, want: 3},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC), step: tc.elapsed}
			anim := &recordingAnimation{}
			var commits []int
			sw := Stopwatch{
				Activity:  "linux/book",
				Animation: anim,
				Now:       clock.Now,
				Commit: func(activity string, minutes int) error {
					if activity != "linux/book" {
						t.Errorf("unexpected activity %q", activity)
					}
					commits = append(commits, minutes)
					return nil
				},
			}

			r, err := sw.Run(cancelled())
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if r.Minutes != tc.want {
				t.Fatalf("expected %d minutes, got %d", tc.want, r.Minutes)
			}
			if r.Elapsed != tc.elapsed {
				t.Fatalf("expected elapsed %v, got %v", tc.elapsed, r.Elapsed)
			}
			if len(commits) != 1 || commits[0] != tc.want {
				t.Fatalf("expected a single commit of %d, got %v", tc.want, commits)
			}
			if anim.ran != 1 {
				t.Fatalf("expected animation to run once, ran %d", anim.ran)
			}
			if sw.State() != Stopped {
				t.Fatalf("expected stopped, got %v", sw.State())
			}
		})
	}
}

func TestRunOnlyOnce(t *testing.T) {
	sw := Stopwatch{Activity: "a"}
	if sw.State() != Idle {
		t.Fatalf("expected idle, got %v", sw.State())
	}
	if _, err := sw.Run(cancelled()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := sw.Run(cancelled()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestRunReturnsCommitError(t *testing.T) {
	boom := errors.New("disk full")
	sw := Stopwatch{
		Activity: "a",
		Commit:   func(string, int) error { return boom },
	}
	r, err := sw.Run(cancelled())
	if !errors.Is(err, boom) {
		t.Fatalf("expected commit error, got %v", err)
	}
	if r == nil || sw.State() != Stopped {
		t.Fatalf("expected a stopped result despite the error")
	}
}

func TestRunBlocksUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sw := Stopwatch{Activity: "a"}
	done := make(chan struct{})
	go func() {
		_, _ = sw.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("stopwatch stopped before cancel")
	case <-time.After(20 * time.Millisecond):
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stopwatch did not stop after cancel")
	}
}
