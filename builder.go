package timespan

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Builder accumulates intervals into a canonical List incrementally. Each
// Add keeps the working set canonical by inserting in sorted position and
// merging only the neighbors it touches, so no full re-sort happens per
// insertion.
//
// Build does not consume the builder: further Adds followed by another
// Build reflect everything accumulated so far. A Builder is not safe for
// concurrent mutation; callers must serialize access.
type Builder struct {
	intervals []Interval
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add folds ivl into the working set.
func (b *Builder) Add(ivl Interval) {
	i := sort.Search(len(b.intervals), func(k int) bool {
		return b.intervals[k].start.After(ivl.start)
	})
	if i > 0 && (b.intervals[i-1].Mergeable(ivl) || b.intervals[i-1].Equal(ivl)) {
		i--
	}
	// Consume the run of existing intervals the growing hull reaches.
	j := i
	for j < len(b.intervals) && (ivl.Mergeable(b.intervals[j]) || ivl.Equal(b.intervals[j])) {
		ivl = ivl.Hull(b.intervals[j])
		j++
	}
	if i == j {
		b.intervals = slices.Insert(b.intervals, i, ivl)
		return
	}
	b.intervals[i] = ivl
	b.intervals = slices.Delete(b.intervals, i+1, j)
}

// AddAll folds every interval into the working set.
func (b *Builder) AddAll(intervals ...Interval) {
	for _, ivl := range intervals {
		b.Add(ivl)
	}
}

// AddRange constructs an interval from start to stop and adds it. It
// returns ErrInvalidRange when stop precedes start.
func (b *Builder) AddRange(start, stop time.Time) error {
	ivl, err := New(start, stop)
	if err != nil {
		return err
	}
	b.Add(ivl)
	return nil
}

// Len returns the number of intervals currently accumulated.
func (b *Builder) Len() int {
	return len(b.intervals)
}

// Build returns a canonical List of everything added so far. The builder
// remains usable afterwards.
func (b *Builder) Build() List {
	return List{intervals: slices.Clone(b.intervals)}
}

// Reset clears all accumulated state.
func (b *Builder) Reset() {
	b.intervals = nil
}

// EventBuilder assembles a List from alternating start/stop transition
// events, such as the rise and set times reported by a visibility search.
// An optional bounding window supplies the implicit start for a leading
// stop event and the implicit stop for a trailing start event.
//
// The zero value is an unbounded builder: every Start must be paired with
// an explicit Stop. Not safe for concurrent mutation.
type EventBuilder struct {
	builder   Builder
	window    Interval
	hasWindow bool
	open      time.Time
	isOpen    bool
}

// NewEventBuilder returns an EventBuilder bounded by window.
func NewEventBuilder(window Interval) *EventBuilder {
	return &EventBuilder{window: window, hasWindow: true}
}

// Start opens an interval at t. It returns ErrOpenInterval when a previous
// Start has not yet been closed.
func (b *EventBuilder) Start(t time.Time) error {
	if b.isOpen {
		return fmt.Errorf("%w: started at %s", ErrOpenInterval, b.open.Format(time.RFC3339Nano))
	}
	b.open = t
	b.isOpen = true
	return nil
}

// Stop closes the open interval at t. When no interval is open, the
// bounding window's start is used as the implicit open; without a window,
// ErrNoOpenInterval is returned.
func (b *EventBuilder) Stop(t time.Time) error {
	open := b.open
	if !b.isOpen {
		if !b.hasWindow {
			return ErrNoOpenInterval
		}
		open = b.window.start
	}
	ivl, err := New(open, t)
	if err != nil {
		return err
	}
	b.builder.Add(ivl)
	b.isOpen = false
	return nil
}

// Build returns the normalized List of all closed intervals. A dangling
// open interval is closed at the bounding window's stop; without a window
// it is an error. The builder remains usable, with any dangling interval
// still open.
func (b *EventBuilder) Build() (List, error) {
	if !b.isOpen {
		return b.builder.Build(), nil
	}
	if !b.hasWindow {
		return List{}, fmt.Errorf("%w: started at %s and never stopped",
			ErrOpenInterval, b.open.Format(time.RFC3339Nano))
	}
	ivl, err := New(b.open, b.window.stop)
	if err != nil {
		return List{}, err
	}
	list := b.builder.Build()
	return list.Union(NewList(ivl)), nil
}

// Reset clears all accumulated state, keeping the bounding window.
func (b *EventBuilder) Reset() {
	b.builder.Reset()
	b.isOpen = false
	b.open = time.Time{}
}
