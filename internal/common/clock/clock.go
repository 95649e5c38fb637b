package clock

import "time"

// Clock abstracts time for expiry checks and record timestamps
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock pinned to one instant, for tests
type Fixed struct {
	Time time.Time
}

// Now returns the pinned instant
func (f *Fixed) Now() time.Time {
	return f.Time
}
