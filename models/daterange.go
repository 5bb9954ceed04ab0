package models

import "time"

// Date truncates t to midnight UTC of the calendar day t falls on in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}

// DateRange is either Definite(start, end) or OpenEnded(start).
// The zero value is an open-ended range starting at the zero time.
type DateRange struct {
	start time.Time
	end   time.Time
	open  bool
}

func Definite(start, end time.Time) DateRange {
	return DateRange{start: Date(start), end: Date(end)}
}

func OpenEnded(start time.Time) DateRange {
	return DateRange{start: Date(start), open: true}
}

// RangeOf builds a DateRange from a persisted check-in and nullable check-out.
func RangeOf(start time.Time, end *time.Time) DateRange {
	if end == nil {
		return OpenEnded(start)
	}
	return Definite(start, *end)
}

func (r DateRange) Start() time.Time { return r.start }

// End returns the end date and false for open-ended ranges.
func (r DateRange) End() (time.Time, bool) {
	if r.open {
		return time.Time{}, false
	}
	return r.end, true
}

func (r DateRange) IsOpenEnded() bool { return r.open }

// EndPtr is the persisted form of End.
func (r DateRange) EndPtr() *time.Time {
	if r.open {
		return nil
	}
	e := r.end
	return &e
}

// Nights is the number of nights of a definite range; ok is false for open-ended ranges.
func (r DateRange) Nights() (n int, ok bool) {
	if r.open {
		return 0, false
	}
	return DaysBetween(r.start, r.end), true
}

// Conflicts reports whether a candidate booking collides with the existing booking r.
//
// Two definite ranges [a1,b1) and [a2,b2) collide iff a1 < b2 and b1 > a2.
// An open-ended existing booking blocks any candidate starting on or before its own start,
// and any open-ended candidate at all since both would hold the room indefinitely.
// An open-ended candidate collides with a definite existing booking that ends after the candidate starts.
func (r DateRange) Conflicts(candidate DateRange) bool {
	if r.open {
		return candidate.open || !candidate.start.After(r.start)
	}
	if candidate.open {
		return candidate.start.Before(r.end)
	}
	return candidate.start.Before(r.end) && candidate.end.After(r.start)
}
