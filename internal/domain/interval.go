package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval's end is not strictly after its start
var ErrInvalidInterval = errors.New("domain: interval end must be after start")

// TimeInterval represents a half-open time range [Start, End).
// Zero-length and inverted intervals are rejected at construction.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval creates a validated half-open interval
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !end.After(start) {
		return TimeInterval{}, fmt.Errorf("%w: start=%s end=%s",
			ErrInvalidInterval, start.Format(DateTimeFormat), end.Format(DateTimeFormat))
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching boundaries (one interval ending exactly where the other starts)
// do NOT overlap, so back-to-back reservations are allowed.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether the instant t falls inside the interval
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns the length of the interval
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(DateTimeFormat), i.End.Format(DateTimeFormat))
}
