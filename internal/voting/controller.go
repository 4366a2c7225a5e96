// Package voting implements the pairwise voting controller: the state
// machine that locks the candidates, posts the vote, and then either
// shows a fresh pair or counts down to a page reload.
//
// All state lives on the goroutine running Controller.Run. Network calls
// and the countdown run on their own goroutines and report back as events,
// so the loop never blocks on them.
package voting

import (
	"context"
	"sync/atomic"
	"time"

	"pairvote/internal/countdown"
	"pairvote/internal/models"

	"github.com/rs/zerolog/log"
)

// View is the page the controller renders to
type View interface {
	SetLocked(locked bool)
	SetSources(image1, image2 string)
	ShowCooldown()
	SetProgress(dashArray, label string)
	Alert(message string)
	Reload()
}

// VoteSubmitter posts a vote to the voting site
type VoteSubmitter interface {
	SubmitVote(ctx context.Context, variant models.Variant, vote models.VoteRequest) (models.VoteOutcome, error)
}

// Options tune the countdown
type Options struct {
	TimeLimit    int
	ArcLength    int
	TickInterval time.Duration
	Clock        countdown.Clock
}

func (o Options) withDefaults() Options {
	if o.TimeLimit <= 0 {
		o.TimeLimit = countdown.DefaultTimeLimit
	}
	if o.ArcLength <= 0 {
		o.ArcLength = countdown.DefaultArcLength
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.Clock == nil {
		o.Clock = countdown.SystemClock{}
	}
	return o
}

// Controller owns one page's voting state
type Controller struct {
	view  View
	votes VoteSubmitter
	opts  Options

	events chan Event
	done   chan struct{}
	snap   Snapshot
	state  atomic.Int32
}

// NewController creates a controller for a rendered page
func NewController(page models.PageState, view View, votes VoteSubmitter, opts Options) *Controller {
	opts = opts.withDefaults()
	c := &Controller{
		view:   view,
		votes:  votes,
		opts:   opts,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		snap:   NewSnapshot(page, opts.TimeLimit, opts.ArcLength),
	}
	c.state.Store(int32(Idle))
	return c
}

// State returns the current state
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Click delivers a click on the named candidate. Clicks are handled in
// order; those arriving outside Idle are ignored.
func (c *Controller) Click(name string) {
	select {
	case c.events <- Clicked{Name: name}:
	case <-c.done:
	}
}

// Run handles events until the page reloads (nil) or ctx ends (ctx.Err()).
// A controller runs once.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if c.dispatch(loopCtx, Ready{}) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			if c.dispatch(loopCtx, ev) {
				return nil
			}
		}
	}
}

// dispatch applies one event and reports whether the page reloaded
func (c *Controller) dispatch(ctx context.Context, ev Event) bool {
	prev := c.snap.State
	next, effects := Transition(c.snap, ev)
	c.snap = next
	c.state.Store(int32(next.State))

	if prev != next.State {
		log.Debug().
			Str("from", prev.String()).
			Str("to", next.State.String()).
			Str("variant", next.Variant.String()).
			Msg("Voting state changed")
	}

	reloaded := false
	for _, eff := range effects {
		if c.apply(ctx, eff) {
			reloaded = true
		}
	}
	return reloaded
}

func (c *Controller) apply(ctx context.Context, eff Effect) bool {
	switch eff := eff.(type) {
	case LockCandidates:
		c.view.SetLocked(true)
	case UnlockCandidates:
		c.view.SetLocked(false)
	case PostVote:
		go c.submit(ctx, c.snap.Variant, eff.Request)
	case ReplaceSources:
		c.view.SetSources(eff.Image1, eff.Image2)
	case EnterCooldownView:
		c.view.ShowCooldown()
	case StartCountdown:
		go c.countdown(ctx)
	case RenderProgress:
		c.view.SetProgress(eff.DashArray, eff.Label)
	case ReportError:
		log.Error().
			Err(eff.Err).
			Str("img1", c.snap.Pair.First.Name).
			Str("img2", c.snap.Pair.Second.Name).
			Msg("Failed to submit vote")
	case AlertUser:
		c.view.Alert(eff.Message)
	case Reload:
		c.view.Reload()
		return true
	}
	return false
}

func (c *Controller) submit(ctx context.Context, variant models.Variant, vote models.VoteRequest) {
	outcome, err := c.votes.SubmitVote(ctx, variant, vote)
	if err != nil {
		c.post(ctx, VoteFailed{Err: err})
		return
	}

	log.Info().
		Str("img1", vote.Img1).
		Str("img2", vote.Img2).
		Str("winner", vote.Winner).
		Msg("Vote submitted")

	c.post(ctx, VoteSucceeded{Outcome: outcome})
}

func (c *Controller) countdown(ctx context.Context) {
	timer := countdown.Timer{Limit: c.opts.TimeLimit}
	ticks := countdown.Ticks(ctx, c.opts.Clock, c.opts.TickInterval)

	err := timer.Run(ctx, ticks,
		func(s models.TimerState) { c.post(ctx, Ticked{Timer: s}) },
		func() { c.post(ctx, Expired{}) },
	)
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Countdown stopped early")
	}
}

func (c *Controller) post(ctx context.Context, ev Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}
