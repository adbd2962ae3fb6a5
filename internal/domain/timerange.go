package domain

import "time"

// TimeRange is a half-open interval [Start, End). The end instant itself is
// not part of the range, so back-to-back bookings can share a boundary.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}

	return TimeRange{Start: start, End: end}, nil
}

func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// DurationHours returns the billable length of the range in whole hours,
// rounding partial hours up.
func (tr TimeRange) DurationHours() int {
	d := tr.Duration()

	return int((d + time.Hour - 1) / time.Hour)
}

// Overlaps reports whether the two half-open ranges share at least one
// instant. Ranges that merely touch (one ends exactly where the other
// starts) do not overlap.
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && other.Start.Before(tr.End)
}
