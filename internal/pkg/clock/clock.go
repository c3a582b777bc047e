// Package clock lets session expiry be driven by a controllable time source
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/bt-ship-roller/internal/pkg/clock Clock

// Clock provides the current time
type Clock interface {
	Now() time.Time
}

// Real reads the system clock
type Real struct{}

// Now returns the current time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a system clock
func New() Clock {
	return &Real{}
}

// Expired reports whether deadline has passed. A deadline equal to now is still live.
func Expired(c Clock, deadline time.Time) bool {
	return c.Now().After(deadline)
}
