package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/lightmatch/internal/common/clock Clock
type Clock interface {
	Now() time.Time

	// AfterFunc runs f on its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) clockwork.Timer
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct {
	real clockwork.Clock
}

// New returns a clock backed by the system clock
func New() *DefaultClock {
	return &DefaultClock{real: clockwork.NewRealClock()}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return c.real.Now()
}

// AfterFunc schedules f on the system clock
func (c *DefaultClock) AfterFunc(d time.Duration, f func()) clockwork.Timer {
	return c.real.AfterFunc(d, f)
}
