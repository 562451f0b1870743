// Package timeutil holds the time formats and duration helpers shared by the
// tracker commands.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DefaultWindow is the look-back used by info when no --since is given.
const DefaultWindow = "1w"

// windowUnits is ordered largest first; FormatWindow relies on it.
var windowUnits = []struct {
	label string
	size  time.Duration
	names []string
}{
	{"w", 7 * 24 * time.Hour, []string{"w", "wk", "wks", "week", "weeks"}},
	{"d", 24 * time.Hour, []string{"d", "day", "days"}},
	{"h", time.Hour, []string{"h", "hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"m", "min", "mins", "minute", "minutes"}},
}

func unitSize(name string) (time.Duration, bool) {
	for _, u := range windowUnits {
		for _, n := range u.names {
			if n == name {
				return u.size, true
			}
		}
	}
	return 0, false
}

// ParseWindow reads a look-back such as "1w", "3d" or "1w2d6h" and returns the
// duration with its compact form. Minutes are the smallest unit since that is
// what the activity log records. An empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.Join(strings.Fields(input), ""))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for s != "" {
		digits := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
		if digits <= 0 {
			return 0, "", fmt.Errorf("invalid window %q, expected a count then a unit", input)
		}
		letters := strings.IndexFunc(s[digits:], unicode.IsDigit)
		if letters < 0 {
			letters = len(s) - digits
		}
		count, err := strconv.Atoi(s[:digits])
		if err != nil {
			return 0, "", fmt.Errorf("invalid window count %q: %w", s[:digits], err)
		}
		unit := s[digits : digits+letters]
		size, ok := unitSize(unit)
		if !ok {
			return 0, "", fmt.Errorf("unsupported window unit %q, use m, h, d or w", unit)
		}
		total += time.Duration(count) * size
		s = s[digits+letters:]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("window must be at least a minute")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d as "1w2d6h30m", dropping anything below a minute.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range windowUnits {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
