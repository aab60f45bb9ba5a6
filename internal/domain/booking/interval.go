package booking

import (
	"time"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
)

// Interval is an immutable value object for a requested rental window.
// Instants are stored in UTC.
type Interval struct {
	start time.Time
	end   time.Time
}

// NewInterval validates and creates an Interval. The start must be strictly
// before the end.
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, domain.NewValidationError("start time must be before end time")
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

// Start returns the interval start instant.
func (i Interval) Start() time.Time { return i.start }

// End returns the interval end instant.
func (i Interval) End() time.Time { return i.end }

// Duration returns the interval length.
func (i Interval) Duration() time.Duration { return i.end.Sub(i.start) }

// Overlaps reports whether the two intervals conflict under the closed
// test: startA <= endB AND endA >= startB. Touching boundary instants count
// as a conflict, which leaves a handoff buffer between back-to-back rentals.
func (i Interval) Overlaps(other Interval) bool {
	return !i.start.After(other.end) && !i.end.Before(other.start)
}
