package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventLogChanged indicates the activity log was written or replaced.
	EventLogChanged EventType = iota

	// EventLogRemoved indicates the activity log disappeared.
	EventLogRemoved
)

func (t EventType) String() string {
	switch t {
	case EventLogChanged:
		return "changed"
	case EventLogRemoved:
		return "removed"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Persistence.Watch when the log file changes.
type Event struct {
	Type EventType
	Path string
}

// Watch streams change events until ctx is cancelled. The directory holding
// the log is watched rather than the file so that editors replacing the file
// are still seen. The channel is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.dir, err)
	}

	target := filepath.Clean(p.path)
	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Warn("watcher close", "err", err)
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop when the consumer is behind; the next event re-reads the
				// whole file anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventLogChanged, Path: p.path}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				log.Debug("activity log event", "op", evt.Op.String())
				switch {
				case evt.Has(fsnotify.Remove), evt.Has(fsnotify.Rename):
					throttle.Enqueue(Event{Type: EventLogRemoved, Path: p.path}, send)
				case evt.Has(fsnotify.Write), evt.Has(fsnotify.Create):
					throttle.Enqueue(Event{Type: EventLogChanged, Path: p.path}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of notifications, a single save usually
// produces several writes, into one event per type.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]Event
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]Event),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending[ev.Type] = ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

// flush holds the lock while sending so Stop cannot return mid-send; send
// must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	for _, ev := range t.pending {
		send(ev)
	}
	t.pending = make(map[EventType]Event)
	t.timer = nil
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
