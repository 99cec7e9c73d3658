package timespan

import "errors"

var (
	// ErrInvalidRange is returned when an interval's stop precedes its start.
	ErrInvalidRange = errors.New("interval stop precedes start")

	// ErrNotMergeable is returned by Merge when the two intervals neither
	// overlap nor touch at a boundary.
	ErrNotMergeable = errors.New("intervals neither overlap nor touch")

	// ErrNegativePad is returned by Pad when shrinking an interval by more
	// than its duration allows.
	ErrNegativePad = errors.New("negative pad exceeds half the interval duration")

	// ErrOpenInterval is returned by EventBuilder.Start when an interval is
	// already open.
	ErrOpenInterval = errors.New("interval already open")

	// ErrNoOpenInterval is returned by EventBuilder.Stop when no interval is
	// open and the builder has no window to supply an implicit start.
	ErrNoOpenInterval = errors.New("no open interval")
)
