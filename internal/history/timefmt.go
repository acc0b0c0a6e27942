package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// stampLayout is the log's native timestamp format, date and time joined
// with a space: "04-25-19 13:05:59".
const stampLayout = "01-02-06 15:04:05"

// ParseStamp parses a log timestamp from its separate date and time columns.
func ParseStamp(date, clock string) (time.Time, error) {
	s := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	t, err := time.Parse(stampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ParseClock converts a controller duration column like "01:29"
// (1 minute, 29 seconds) into a time.Duration. Empty or malformed values
// count as zero; the raw string is still preserved on the record.
func ParseClock(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return time.Duration(mins)*time.Minute + time.Duration(secs)*time.Second
}

// FormatStamp renders a timestamp for display: "04-25-19 01:05:59pm",
// or "Thu, Apr 25 01:05:59pm" when human is set.
func FormatStamp(t time.Time, human bool) string {
	clock := strings.ToLower(t.Format("03:04:05PM"))
	if human {
		return t.Format("Mon, Jan _2") + " " + clock
	}
	return t.Format("01-02-06") + " " + clock
}

// FormatClock renders a timestamp's time-of-day only.
func FormatClock(t time.Time) string {
	return strings.ToLower(t.Format("03:04:05PM"))
}

// FormatDuration renders a duration as "2 hours, 5 minutes, 9 seconds",
// or compactly as "02h:05m:09s" when short is set. Negative durations keep
// a leading minus so clock anomalies stay visible.
func FormatDuration(d time.Duration, short bool) string {
	neg := ""
	if d < 0 {
		neg = "-"
		d = -d
	}
	total := int(d / time.Second)
	hours := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	if short {
		switch {
		case hours > 0:
			return fmt.Sprintf("%s%02dh:%02dm:%02ds", neg, hours, mins, secs)
		case mins > 0:
			return fmt.Sprintf("%s%02dm:%02ds", neg, mins, secs)
		default:
			return fmt.Sprintf("%s%02ds", neg, secs)
		}
	}

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	switch {
	case hours > 0:
		return neg + strings.Join([]string{
			plural(hours, "hour"), plural(mins, "minute"), plural(secs, "second"),
		}, ", ")
	case mins > 0:
		return neg + plural(mins, "minute") + ", " + plural(secs, "second")
	default:
		return neg + plural(secs, "second")
	}
}
