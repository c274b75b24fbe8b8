package notification

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimeAgo renders the age of a raw timestamp relative to now. Zone-less
// inputs are read in now's location. Unparseable input yields "".
func TimeAgo(ts *string, now time.Time) string {
	if ts == nil || strings.TrimSpace(*ts) == "" {
		return ""
	}
	t, err := ParseTimestamp(*ts, now.Location())
	if err != nil {
		return ""
	}

	// whole seconds, floored; time.Duration saturates past ~292 years
	elapsed := now.Unix() - t.Unix()
	if now.Nanosecond() < t.Nanosecond() {
		elapsed--
	}
	if elapsed < 0 {
		return "just now"
	}
	minutes := elapsed / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return plural(days, "day")
	case hours > 0:
		return plural(hours, "hour")
	case minutes > 0:
		return plural(minutes, "min")
	default:
		return plural(elapsed, "sec")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// ParseTimestamp accepts "DD/MM/YYYY[ HH:MM:SS]" (any value containing a
// slash) or anything dateparse understands.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if strings.Contains(raw, "/") {
		return parseDayFirst(raw, loc)
	}
	return dateparse.ParseIn(strings.TrimSpace(raw), loc)
}

func parseDayFirst(raw string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(raw, " ")
	datePart, timePart := parts[0], "00:00:00"
	if len(parts) > 1 {
		timePart = parts[1]
	}

	date := strings.Split(datePart, "/")
	if len(date) < 3 {
		return time.Time{}, fmt.Errorf("timestamp %q: want DD/MM/YYYY", raw)
	}
	day, err := component(date[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q day: %w", raw, err)
	}
	month, err := component(date[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q month: %w", raw, err)
	}
	year, err := component(date[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q year: %w", raw, err)
	}

	clock := [3]int{}
	for i, p := range strings.Split(timePart, ":") {
		if i >= len(clock) {
			break
		}
		v, err := component(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("timestamp %q time: %w", raw, err)
		}
		clock[i] = v
	}
	return time.Date(year, time.Month(month), day, clock[0], clock[1], clock[2], 0, loc), nil
}

// component parses one numeric field; an empty field counts as zero.
func component(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
