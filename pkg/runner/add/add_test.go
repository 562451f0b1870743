package add

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tracker/pkg/activity"
	"tableflip.dev/tracker/pkg/store"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

func openTemp(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Open(&store.Config{Path: filepath.Join(t.TempDir(), "activity_log.json")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return p
}

type failingStore struct {
	store.Persistence
	saves int
}

func (f *failingStore) Load() (*activity.Tree, error) { return activity.New(), nil }

func (f *failingStore) Save(*activity.Tree) error {
	f.saves++
	return errors.New("permission denied")
}

func TestAddLogsMinutes(t *testing.T) {
	p := openTemp(t)
	var out bytes.Buffer

	a := Add{Activity: "test/activity", Minutes: "30", Persistence: p, Out: &out, Now: func() time.Time { return now }}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := out.String(); got != "Added 30 minutes to test/activity.\n" {
		t.Fatalf("unexpected output %q", got)
	}

	tree, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, path := range []string{"test", "test/activity"} {
		n, ok := activity.Find(tree, path)
		if !ok || n.Time() != 30 {
			t.Fatalf("expected 30 minutes at %s", path)
		}
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	tests := map[string]struct {
		activity string
		minutes  string
		want     string
	}{
		"not a number":  {activity: "a", minutes: "ten", want: `Error: invalid minutes "ten"`},
		"fraction":      {activity: "a", minutes: "1.5", want: `Error: invalid minutes "1.5"`},
		"negative":      {activity: "a", minutes: "-5", want: "Error: minutes cannot be negative"},
		"empty segment": {activity: "a//b", minutes: "5", want: "Error: invalid activity path"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			p := &failingStore{}
			var out bytes.Buffer
			a := Add{Activity: tc.activity, Minutes: tc.minutes, Persistence: p, Out: &out}
			if err := a.Do(context.Background()); err != nil {
				t.Fatalf("do: %v", err)
			}
			if !strings.HasPrefix(out.String(), tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, out.String())
			}
			if p.saves != 0 {
				t.Fatalf("expected no save, got %d", p.saves)
			}
		})
	}
}

func TestAddReportsSaveFailure(t *testing.T) {
	p := &failingStore{}
	var out bytes.Buffer
	a := Add{Activity: "a", Minutes: "5", Persistence: p, Out: &out}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("save failures should be reported, not returned: %v", err)
	}
	if !strings.Contains(out.String(), "Error: unable to save activity log: permission denied\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if strings.Contains(out.String(), "Added") {
		t.Fatalf("should not claim success: %q", out.String())
	}
}
