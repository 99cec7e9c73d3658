package timespan

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"time"
)

// List is an ordered collection of disjoint Intervals in canonical form:
// sorted ascending by start, with no two members overlapping or touching at
// a boundary (mergeable inputs are combined during normalization).
//
// A List is immutable once constructed, so it is safe for concurrent reads
// from multiple goroutines.
type List struct {
	intervals []Interval
}

// NewList creates a canonical List from an arbitrary, possibly overlapping,
// possibly unsorted set of intervals.
func NewList(intervals ...Interval) List {
	return List{intervals: normalize(slices.Clone(intervals))}
}

// FromTimes creates a canonical List from a flattened sequence of
// alternating start and stop times: start1, stop1, start2, stop2, and so
// on. It returns an error on an odd number of times or on any pair whose
// stop precedes its start.
func FromTimes(times ...time.Time) (List, error) {
	if len(times)%2 != 0 {
		return List{}, fmt.Errorf("%w: odd number of times (%d); start and stop pairs required",
			ErrInvalidRange, len(times))
	}
	intervals := make([]Interval, 0, len(times)/2)
	for k := 0; k < len(times); k += 2 {
		ivl, err := New(times[k], times[k+1])
		if err != nil {
			return List{}, err
		}
		intervals = append(intervals, ivl)
	}
	return List{intervals: normalize(intervals)}, nil
}

// normalize sorts intervals by (start, stop) and sweeps left to right,
// merging each interval into the previous one whenever they overlap or
// touch. Duplicate instants are dropped. The input slice is reused.
func normalize(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	slices.SortFunc(intervals, Interval.Compare)

	out := intervals[:1]
	for _, cur := range intervals[1:] {
		last := &out[len(out)-1]
		switch {
		case last.Mergeable(cur):
			*last = last.Hull(cur)
		case last.Equal(cur):
			// identical instants; keep one
		default:
			out = append(out, cur)
		}
	}
	return out
}

// Len returns the number of intervals in the list.
func (l List) Len() int {
	return len(l.intervals)
}

// IsEmpty reports whether the list holds no intervals.
func (l List) IsEmpty() bool {
	return len(l.intervals) == 0
}

// At returns the interval at index i.
func (l List) At(i int) Interval {
	return l.intervals[i]
}

// Intervals returns a copy of the list's intervals in ascending order.
func (l List) Intervals() []Interval {
	return slices.Clone(l.intervals)
}

// All returns an iterator over the intervals in ascending order. The
// iterator is restartable: each call to range over it traverses the full
// list again.
func (l List) All() iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		for _, ivl := range l.intervals {
			if !yield(ivl) {
				return
			}
		}
	}
}

// Span returns the interval from the earliest start to the latest stop of
// all members. It returns false when the list is empty.
func (l List) Span() (Interval, bool) {
	if len(l.intervals) == 0 {
		return Interval{}, false
	}
	return Interval{
		start: l.intervals[0].start,
		stop:  l.intervals[len(l.intervals)-1].stop,
	}, true
}

// TotalDuration returns the summed duration of all intervals. Members are
// disjoint, so no span is counted twice.
func (l List) TotalDuration() time.Duration {
	var total time.Duration
	for _, ivl := range l.intervals {
		total += ivl.Duration()
	}
	return total
}

// IndexOf returns the index of the interval containing t, or -1.
func (l List) IndexOf(t time.Time) int {
	// First interval starting after t; the only candidate is its predecessor.
	idx := sort.Search(len(l.intervals), func(k int) bool {
		return l.intervals[k].start.After(t)
	}) - 1
	if idx >= 0 && l.intervals[idx].Contains(t) {
		return idx
	}
	return -1
}

// Contains reports whether t falls within any interval of the list.
func (l List) Contains(t time.Time) bool {
	return l.IndexOf(t) >= 0
}

// ContainsInterval reports whether ivl lies entirely within a single
// interval of the list.
func (l List) ContainsInterval(ivl Interval) bool {
	idx := l.IndexOf(ivl.start)
	return idx >= 0 && l.intervals[idx].ContainsInterval(ivl)
}

// Union returns the canonical union of both lists. Neither operand is
// modified. Intervals that touch across the two inputs are merged.
func (l List) Union(other List) List {
	if l.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return l
	}

	// Both inputs are sorted, so a single merge-sweep suffices.
	merged := make([]Interval, 0, len(l.intervals)+len(other.intervals))
	i, j := 0, 0
	for i < len(l.intervals) || j < len(other.intervals) {
		var cur Interval
		if j >= len(other.intervals) ||
			(i < len(l.intervals) && l.intervals[i].Compare(other.intervals[j]) <= 0) {
			cur = l.intervals[i]
			i++
		} else {
			cur = other.intervals[j]
			j++
		}
		if n := len(merged); n > 0 && (merged[n-1].Mergeable(cur) || merged[n-1].Equal(cur)) {
			merged[n-1] = merged[n-1].Hull(cur)
		} else {
			merged = append(merged, cur)
		}
	}
	return List{intervals: merged}
}

// pairIntersection returns the list-level intersection of two member
// intervals. Positive spans that merely touch at a boundary share no
// duration and produce nothing; an instant operand contained in the other
// interval survives as a zero-length result.
func pairIntersection(a, b Interval) (Interval, bool) {
	ivl, ok := a.Intersection(b)
	if !ok {
		return Interval{}, false
	}
	if ivl.IsInstant() && !a.IsInstant() && !b.IsInstant() {
		return Interval{}, false
	}
	return ivl, true
}

// Intersect returns the spans common to both lists. Neither operand is
// modified. The result is canonical by construction: pairwise intersections
// of two sorted disjoint lists are themselves sorted and disjoint.
func (l List) Intersect(other List) List {
	var out []Interval
	i, j := 0, 0
	for i < len(l.intervals) && j < len(other.intervals) {
		a, b := l.intervals[i], other.intervals[j]
		if ivl, ok := pairIntersection(a, b); ok {
			out = append(out, ivl)
		}
		switch c := a.stop.Compare(b.stop); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return List{intervals: out}
}

// Overlaps reports whether any interval of l shares time with any interval
// of other. It short-circuits on the first hit without building a result
// list.
func (l List) Overlaps(other List) bool {
	i, j := 0, 0
	for i < len(l.intervals) && j < len(other.intervals) {
		a, b := l.intervals[i], other.intervals[j]
		if _, ok := pairIntersection(a, b); ok {
			return true
		}
		if a.stop.Compare(b.stop) <= 0 {
			i++
		} else {
			j++
		}
	}
	return false
}

// Subtract removes from l every span covered by other. Neither operand is
// modified. Each interval of l is clipped against the overlapping intervals
// of other in order: shrunk when covered at an edge, split when a
// subtrahend falls strictly inside it, dropped when fully covered.
//
// Boundary touches remove nothing, and zero-length subtrahend intervals are
// ignored, since a closed span minus a single point is not representable.
// A zero-length member of l is dropped when any interval of other contains
// its point.
func (l List) Subtract(other List) List {
	if l.IsEmpty() || other.IsEmpty() {
		return l
	}

	var out []Interval
	j := 0
	for _, cur := range l.intervals {
		if cur.IsInstant() {
			if !other.Contains(cur.start) {
				out = append(out, cur)
			}
			continue
		}

		// Skip subtrahends ending at or before cur: they clip nothing, and
		// later members of l start no earlier than cur does.
		for j < len(other.intervals) && !other.intervals[j].stop.After(cur.start) {
			j++
		}

		alive := true
		for k := j; alive && k < len(other.intervals); k++ {
			o := other.intervals[k]
			if !o.start.Before(cur.stop) {
				break
			}
			if o.IsInstant() {
				continue
			}
			if o.start.After(cur.start) {
				out = append(out, Interval{start: cur.start, stop: o.start})
			}
			if o.stop.Before(cur.stop) {
				cur.start = o.stop
			} else {
				alive = false
			}
		}
		if alive {
			out = append(out, cur)
		}
	}
	return List{intervals: out}
}

// Complement returns the gaps of the list inside the within interval: every
// span of within not covered by l. Zero-length members of l leave no gap.
func (l List) Complement(within Interval) List {
	return NewList(within).Subtract(l)
}

// Equal reports whether both lists hold the same intervals.
func (l List) Equal(other List) bool {
	return slices.EqualFunc(l.intervals, other.intervals, Interval.Equal)
}

// String renders the list as "[[start, stop], ...]". The output round-trips
// through ParseList.
func (l List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for k, ivl := range l.intervals {
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ivl.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON implements json.Marshaler, encoding the list as an array of
// compact interval values.
func (l List) MarshalJSON() ([]byte, error) {
	if l.intervals == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.intervals)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded intervals are
// re-normalized.
func (l *List) UnmarshalJSON(b []byte) error {
	var intervals []Interval
	if err := json.Unmarshal(b, &intervals); err != nil {
		return err
	}
	l.intervals = normalize(intervals)
	return nil
}
