// Package timespan provides closed time intervals and canonical lists of
// disjoint intervals, with set-style algebra (union, intersection,
// subtraction, complement) over those lists.
package timespan

import (
	"encoding/json"
	"fmt"
	"time"
)

// Interval is a closed span [start, stop] between two points in time.
//
// Intervals are immutable values: they are created by New (or as the output
// of an algebraic operation) and compared, merged, and intersected without
// ever being modified in place. A zero-length interval, where start equals
// stop, is valid and represents a single instant.
type Interval struct {
	start time.Time
	stop  time.Time
}

// New creates an Interval from start to stop. It returns ErrInvalidRange
// when stop precedes start; the endpoints are never silently reordered, as
// that would hide bugs in the caller.
func New(start, stop time.Time) (Interval, error) {
	if stop.Before(start) {
		return Interval{}, fmt.Errorf("%w: start %s, stop %s", ErrInvalidRange,
			start.Format(time.RFC3339Nano), stop.Format(time.RFC3339Nano))
	}
	return Interval{start: start, stop: stop}, nil
}

// Must is like New but panics on an invalid range. It simplifies
// construction from endpoints that are known to be ordered.
func Must(start, stop time.Time) Interval {
	ivl, err := New(start, stop)
	if err != nil {
		panic(err)
	}
	return ivl
}

// Start returns the start time of the interval.
func (i Interval) Start() time.Time {
	return i.start
}

// Stop returns the stop time of the interval.
func (i Interval) Stop() time.Time {
	return i.stop
}

// Duration returns the duration of the interval. It is never negative.
func (i Interval) Duration() time.Duration {
	return i.stop.Sub(i.start)
}

// IsInstant reports whether the interval is zero-length.
func (i Interval) IsInstant() bool {
	return i.start.Equal(i.stop)
}

// Contains reports whether t falls within the interval, boundaries included.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.start) && !t.After(i.stop)
}

// ContainsInterval reports whether other lies entirely within the interval.
func (i Interval) ContainsInterval(other Interval) bool {
	return !other.start.Before(i.start) && !other.stop.After(i.stop)
}

// Overlaps reports whether the two intervals share more than a single
// point. Intervals that merely touch at a boundary are adjacent, not
// overlapping.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.stop) && other.start.Before(i.stop)
}

// IsAdjacent reports whether the two intervals touch at exactly one
// boundary without overlapping.
func (i Interval) IsAdjacent(other Interval) bool {
	if i.Overlaps(other) {
		return false
	}
	return i.start.Equal(other.stop) != i.stop.Equal(other.start)
}

// Mergeable reports whether the two intervals overlap or touch, i.e.
// whether Merge can combine them into one interval without loss.
func (i Interval) Mergeable(other Interval) bool {
	return i.Overlaps(other) || i.IsAdjacent(other)
}

// Merge combines two mergeable intervals into the single interval covering
// both. It returns ErrNotMergeable when the intervals neither overlap nor
// touch; callers should check Mergeable first.
func (i Interval) Merge(other Interval) (Interval, error) {
	if !i.Mergeable(other) {
		return Interval{}, fmt.Errorf("%w: %s and %s", ErrNotMergeable, i, other)
	}
	return i.Hull(other), nil
}

// Hull returns the interval from the earliest start to the latest stop of
// the two intervals. Unlike Merge it is defined for any pair, including
// disjoint intervals, in which case the result also covers the gap.
func (i Interval) Hull(other Interval) Interval {
	h := i
	if other.start.Before(h.start) {
		h.start = other.start
	}
	if other.stop.After(h.stop) {
		h.stop = other.stop
	}
	return h
}

// Intersection returns the span common to both intervals. The second return
// value is false when the intervals are disjoint. Two intervals touching at
// a single boundary point yield a zero-length intersection.
func (i Interval) Intersection(other Interval) (Interval, bool) {
	t0 := i.start
	if other.start.After(t0) {
		t0 = other.start
	}
	t1 := i.stop
	if other.stop.Before(t1) {
		t1 = other.stop
	}
	if t1.Before(t0) {
		return Interval{}, false
	}
	return Interval{start: t0, stop: t1}, true
}

// Pad moves the start earlier and the stop later by d, growing the duration
// by 2*d. A negative d shrinks the interval instead and returns
// ErrNegativePad when the shrunk duration would be negative.
func (i Interval) Pad(d time.Duration) (Interval, error) {
	if d < 0 && -2*d > i.Duration() {
		return Interval{}, fmt.Errorf("%w: pad %s, duration %s", ErrNegativePad, d, i.Duration())
	}
	return Interval{start: i.start.Add(-d), stop: i.stop.Add(d)}, nil
}

// StrictlyBefore reports whether the interval ends before other begins,
// with no shared boundary.
func (i Interval) StrictlyBefore(other Interval) bool {
	return i.stop.Before(other.start)
}

// StrictlyAfter reports whether the interval begins after other ends, with
// no shared boundary.
func (i Interval) StrictlyAfter(other Interval) bool {
	return i.start.After(other.stop)
}

// Compare orders intervals by start, then by stop. It returns -1, 0, or 1.
func (i Interval) Compare(other Interval) int {
	if c := i.start.Compare(other.start); c != 0 {
		return c
	}
	return i.stop.Compare(other.stop)
}

// Equal reports whether both intervals have the same endpoints.
func (i Interval) Equal(other Interval) bool {
	return i.start.Equal(other.start) && i.stop.Equal(other.stop)
}

// String renders the interval as "[start, stop]" with RFC 3339 timestamps.
// The output round-trips through ParseInterval.
func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.start.Format(time.RFC3339Nano), i.stop.Format(time.RFC3339Nano))
}

// intervalJSON is the wire form of an Interval.
//
// In order to minimize space, the start time is represented as nanoseconds
// after the unix epoch, and the stop as the number of nanoseconds after the
// start.
type intervalJSON struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// MarshalJSON implements json.Marshaler.
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{
		A: i.start.UnixNano(),
		B: i.Duration().Nanoseconds(),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Interval) UnmarshalJSON(b []byte) error {
	var v intervalJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.B < 0 {
		return fmt.Errorf("%w: negative duration %d", ErrInvalidRange, v.B)
	}
	i.start = time.Unix(0, v.A).UTC()
	i.stop = i.start.Add(time.Duration(v.B))
	return nil
}
