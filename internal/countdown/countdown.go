// Package countdown drives the cool-down timer shown after a vote.
//
// Time is discrete: a Clock produces one tick per interval and a Timer
// consumes ticks until the remaining time reaches zero. Tests swap the
// system clock for a synthetic one.
package countdown

import (
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"pairvote/internal/models"
)

const (
	// DefaultTimeLimit is the cool-down length in ticks
	DefaultTimeLimit = 5
	// DefaultArcLength is the circumference of the progress ring
	DefaultArcLength = 283
)

// Clock schedules ticks
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

// After waits for d on the wall clock
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Ticks yields 1, 2, 3... once per interval until ctx is done or the
// consumer stops ranging.
func Ticks(ctx context.Context, clock Clock, interval time.Duration) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := 1; ; n++ {
			select {
			case <-ctx.Done():
				return
			case <-clock.After(interval):
			}
			if !yield(n) {
				return
			}
		}
	}
}

// Timer counts down from Limit
type Timer struct {
	Limit int
}

// Initial returns the state before the first tick
func (t Timer) Initial() models.TimerState {
	return models.TimerState{TimePassed: 0, TimeLeft: t.Limit, Limit: t.Limit}
}

// Advance applies one tick
func (t Timer) Advance(s models.TimerState) models.TimerState {
	s.TimePassed++
	s.TimeLeft = t.Limit - s.TimePassed
	return s
}

// Run consumes ticks. onTick sees every state with time left; onExpire is
// called exactly once when the time runs out. Run returns ctx.Err() if the
// ticks end before expiry.
func (t Timer) Run(ctx context.Context, ticks iter.Seq[int], onTick func(models.TimerState), onExpire func()) error {
	state := t.Initial()
	if state.Done() {
		onExpire()
		return nil
	}

	for range ticks {
		state = t.Advance(state)
		if state.TimeLeft <= 0 {
			onExpire()
			return nil
		}
		onTick(state)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("tick source ended with %d left", state.TimeLeft)
}

// Fraction is the share of the ring still drawn. It is 1 at the start and
// shrinks a little faster than the raw ratio so the ring empties on the
// last tick.
func Fraction(s models.TimerState) float64 {
	if s.Limit <= 0 {
		return 0
	}
	raw := float64(s.TimeLeft) / float64(s.Limit)
	return raw - (1/float64(s.Limit))*(1-raw)
}

// DashArray renders the stroke-dasharray value for the ring
func DashArray(s models.TimerState, arcLength int) string {
	drawn := math.Round(Fraction(s) * float64(arcLength))
	return fmt.Sprintf("%d %d", int(drawn), arcLength)
}

// FormatLabel renders seconds as m:ss
func FormatLabel(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
