package reservation

import (
	"fmt"
	"time"
)

// Interval is the half-open range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

// Precision is the storage resolution of reservation instants.
const Precision = time.Microsecond

func IsValidOrder(start, end time.Time) bool {
	return start.Before(end)
}

// NewInterval truncates both instants to Precision before checking their order, so an
// interval that would collapse in storage is rejected here.
func NewInterval(start, end time.Time) (Interval, error) {
	start, end = start.Truncate(Precision), end.Truncate(Precision)
	if !IsValidOrder(start, end) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{
		start: start,
		end:   end,
	}, nil
}

func (i Interval) Start() time.Time {
	return i.start
}

func (i Interval) End() time.Time {
	return i.end
}

func (i Interval) Duration() time.Duration {
	return i.end.Sub(i.start)
}

// Overlaps covers partial, containment and equality cases. Intervals that
// only share an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.end) && i.end.After(other.start)
}

func Overlaps(a, b Interval) bool {
	return a.Overlaps(b)
}

// EndsBefore reports end < t. A reservation ending exactly now can still be cancelled.
func (i Interval) EndsBefore(t time.Time) bool {
	return i.end.Before(t)
}

// EndsAtOrBefore reports end <= t, the rule for marking a reservation completed.
func (i Interval) EndsAtOrBefore(t time.Time) bool {
	return !t.Before(i.end)
}

func (i Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", i.start.UTC().Format(time.RFC3339Nano), i.end.UTC().Format(time.RFC3339Nano))
}

func (i Interval) String() string {
	return i.ToTstzrange()
}
