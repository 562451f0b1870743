package printers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Spinner animates frames on a single terminal line.
type Spinner struct {
	Out      io.Writer
	Frames   []string
	Interval time.Duration
	// Animate is false when the output is not a terminal; Run then only waits.
	Animate bool
}

// Run draws a frame every Interval until ctx is done and returns how many
// frames were drawn.
func (s *Spinner) Run(ctx context.Context) int {
	if !s.Animate || len(s.Frames) == 0 || s.Interval <= 0 {
		<-ctx.Done()
		return 0
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		_, _ = fmt.Fprint(out, s.Frames[i%len(s.Frames)]+"\r")
		select {
		case <-ctx.Done():
			return i + 1
		case <-ticker.C:
		}
	}
}
