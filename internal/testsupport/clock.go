package testsupport

import (
	"sync"
	"time"
)

// FakeClock fires every After immediately and keeps the simulated time
// that would have passed.
type FakeClock struct {
	mu      sync.Mutex
	elapsed time.Duration
}

// After advances the simulated time by d and returns a fired channel.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.elapsed += d
	now := time.Unix(0, 0).Add(c.elapsed)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

// Elapsed returns the simulated time handed out so far.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}
