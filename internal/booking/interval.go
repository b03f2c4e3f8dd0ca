package booking

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedDateTime is returned when a date or time-of-day string cannot
// be combined into an instant.
var ErrMalformedDateTime = errors.New("booking: malformed date or time")

const (
	dateLayout = "2006-01-02"

	timeLayoutMinutes = "15:04"
	timeLayoutSeconds = "15:04:05"
)

// Interval is a half-open [Start, End) span of instants. The end boundary is
// exclusive, so back-to-back intervals never overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ParseInstant combines a calendar date and a time-of-day string into a UTC
// instant. Bookings store both values as strings, so every availability
// decision starts here.
func ParseInstant(date, timeOfDay string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDateTime, date)
	}

	layout := timeLayoutMinutes
	if len(timeOfDay) > len(timeLayoutMinutes) {
		layout = timeLayoutSeconds
	}
	t, err := time.Parse(layout, timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDateTime, timeOfDay)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// ParseInterval builds an Interval from the string-encoded boundary fields of
// a booking request.
func ParseInterval(startDate, startTime, endDate, endTime string) (Interval, error) {
	start, err := ParseInstant(startDate, startTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseInstant(endDate, endTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// IsOrdered reports whether the interval's start strictly precedes its end.
func (iv Interval) IsOrdered() bool {
	return iv.Start.Before(iv.End)
}

// Overlaps reports whether two half-open intervals share at least one
// instant: [a,b) and [c,d) overlap iff a < d && c < b.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Slot pairs a stored booking's identity with its occupied interval.
type Slot struct {
	ID       string
	Interval Interval
}

// Conflict identifies a stored booking whose interval intersects a candidate.
type Conflict struct {
	WithBookingID string
}

// DetectConflicts identifies every stored slot whose interval overlaps the
// candidate. The evaluation is read-only and safe to repeat.
func DetectConflicts(existing []Slot, candidate Interval) []Conflict {
	var conflicts []Conflict
	for _, slot := range existing {
		if candidate.Overlaps(slot.Interval) {
			conflicts = append(conflicts, Conflict{WithBookingID: slot.ID})
		}
	}
	return conflicts
}

// Available reports whether the candidate interval can be booked against the
// provided slots.
func Available(existing []Slot, candidate Interval) bool {
	return len(DetectConflicts(existing, candidate)) == 0
}

// DateRange is an inclusive calendar span occupied by a booking, shaped for
// calendar rendering on the client side.
type DateRange struct {
	StartDate string
	EndDate   string
}

// UnavailableRanges projects stored booking spans into the list of ranges a
// calendar should disable. One range is emitted per booking; overlapping
// ranges are not merged, matching the stored set exactly.
func UnavailableRanges(spans []DateRange) []DateRange {
	if len(spans) == 0 {
		return nil
	}
	out := make([]DateRange, len(spans))
	copy(out, spans)
	return out
}
