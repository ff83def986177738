package vote

import "time"

// Clock supplies the current calendar day.
//
// Vote dates always come from a Clock on the server side, never from the
// client.
type Clock interface {
	Today() Date
}

// SystemClock reads the wall clock in a fixed location.
// A nil Location means time.Local.
type SystemClock struct {
	Location *time.Location
}

// Today returns the current calendar day in the clock's location.
func (c SystemClock) Today() Date {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	}
	return DateOf(now)
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() Date

// Today calls f.
func (f ClockFunc) Today() Date {
	return f()
}
