package timespan

import (
	"fmt"
	"strings"
	"time"

	"github.com/inngest/inngest/pkg/dateutil"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// ParseInterval parses the "[start, stop]" form produced by
// Interval.String. The surrounding brackets are optional. Each endpoint is
// parsed via common date formats; the stop may instead be a duration offset
// from the start, e.g. "[2023-01-01T13:15:00Z, 2m]".
//
// Endpoint formats containing a comma are not supported.
func ParseInterval(s string) (Interval, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")

	parts := strings.Split(body, ",")
	if len(parts) != 2 {
		return Interval{}, fmt.Errorf("parse interval %q: expected \"start, stop\"", s)
	}

	start, err := dateutil.ParseString(strings.TrimSpace(parts[0]))
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval %q: start: %w", s, err)
	}

	stopStr := strings.TrimSpace(parts[1])
	if stop, err := dateutil.ParseString(stopStr); err == nil {
		return New(start, stop)
	}
	d, err := str2duration.ParseDuration(stopStr)
	if err != nil {
		return Interval{}, fmt.Errorf("parse interval %q: stop is neither a date nor a duration", s)
	}
	return New(start, start.Add(d))
}

// ParseList parses the "[[start, stop], ...]" form produced by List.String.
// The result is normalized, so overlapping or unsorted input intervals are
// merged.
func ParseList(s string) (List, error) {
	body := strings.TrimSpace(s)
	if !strings.HasPrefix(body, "[") || !strings.HasSuffix(body, "]") {
		return List{}, fmt.Errorf("parse list %q: expected \"[[start, stop], ...]\"", s)
	}
	body = strings.TrimSpace(body[1 : len(body)-1])
	if body == "" {
		return List{}, nil
	}

	var intervals []Interval
	for body != "" {
		if !strings.HasPrefix(body, "[") {
			return List{}, fmt.Errorf("parse list %q: expected \"[\" at %q", s, body)
		}
		end := strings.IndexByte(body, ']')
		if end < 0 {
			return List{}, fmt.Errorf("parse list %q: unterminated interval at %q", s, body)
		}
		ivl, err := ParseInterval(body[:end+1])
		if err != nil {
			return List{}, err
		}
		intervals = append(intervals, ivl)

		body = strings.TrimSpace(body[end+1:])
		body = strings.TrimSpace(strings.TrimPrefix(body, ","))
	}
	return NewList(intervals...), nil
}

// FormatDuration renders a duration in compact form, e.g. "1h30m" or "2d".
// The output round-trips through ParseDuration.
func FormatDuration(d time.Duration) string {
	return str2duration.String(d)
}

// ParseDuration parses the compact duration form, including day and week
// units ("1w2d3h") that time.ParseDuration rejects.
func ParseDuration(s string) (time.Duration, error) {
	return str2duration.ParseDuration(s)
}
