package services

import "time"

// Clock supplies "now" to pricing and checkout so they can be tested without the wall clock.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now() }

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
