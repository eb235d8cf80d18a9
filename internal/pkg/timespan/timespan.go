package timespan

import (
	"errors"
	"time"
)

var ErrEmptyRange = errors.New("check-out date must be after check-in date")

// DateRange is a half-open interval of calendar days: [Start, End).
// The checkout day is excluded, so Nights() == End - Start in days.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = Midnight(start)
	end = Midnight(end)
	if !end.After(start) {
		return DateRange{}, ErrEmptyRange
	}
	return DateRange{start: start, end: end}, nil
}

// MustDateRange panics on an empty range. Test fixtures only.
func MustDateRange(start, end time.Time) DateRange {
	r, err := NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) Nights() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one night.
// A range starting exactly at another's end does not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Contains reports whether day (normalized to midnight) falls inside [Start, End).
func (r DateRange) Contains(day time.Time) bool {
	day = Midnight(day)
	return !day.Before(r.start) && day.Before(r.end)
}

// Covers reports whether the other range lies fully inside this one
// (inclusive on both bounds of the receiver).
func (r DateRange) Covers(other DateRange) bool {
	return !other.start.Before(r.start) && !other.end.After(r.end)
}

// Days yields every billable night in order.
func (r DateRange) Days() []time.Time {
	days := make([]time.Time, 0, r.Nights())
	for d := r.start; d.Before(r.end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Midnight truncates a timestamp to its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the number of whole calendar days from now until the
// given day, negative when the day is already past.
func DaysUntil(now, day time.Time) int {
	return DaysUntilIn(now, day, time.UTC)
}

// DaysUntilIn counts the calendar days between "today" as read off the wall
// clock in loc and the given stay date. Stay dates are plain calendar days
// and are compared as stored; only the instant now is localized.
func DaysUntilIn(now, day time.Time, loc *time.Location) int {
	y, m, d := now.In(loc).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(Midnight(day).Sub(from).Hours() / 24)
}

// LocationFor resolves an IANA zone name, falling back to UTC when the name
// is empty or unknown.
func LocationFor(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
