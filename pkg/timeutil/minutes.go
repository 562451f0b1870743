package timeutil

import "time"

// WholeMinutes truncates d to whole minutes. Anything under a minute is zero.
func WholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// FormatMinutes renders a minute count as FormatWindow does, "2h5m".
func FormatMinutes(m int) string {
	return FormatWindow(time.Duration(m) * time.Minute)
}

// Stamp formats t as the ISO-8601 timestamp stored on activities.
func Stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// naiveStamp is the offset-less ISO-8601 form found in older logs, read as
// local time.
const naiveStamp = "2006-01-02T15:04:05.999999"

// ParseStamp reads a timestamp written by Stamp, or an older one without a
// zone offset.
func ParseStamp(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err == nil {
		return t, nil
	}
	if naive, nerr := time.ParseInLocation(naiveStamp, v, time.Local); nerr == nil {
		return naive, nil
	}
	return time.Time{}, err
}
