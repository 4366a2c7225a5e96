// Package session runs voting pages one after another: load the page, run
// its controller until it reloads, load the next one.
package session

import (
	"context"
	"fmt"
	"io"

	"pairvote/internal/console"
	"pairvote/internal/models"
	"pairvote/internal/page"
	"pairvote/internal/voting"

	"github.com/rs/zerolog/log"
)

// PageLoader loads the voting page
type PageLoader interface {
	Load(ctx context.Context) (models.PageState, error)
}

// Session is one visitor at one terminal
type Session struct {
	pages PageLoader
	votes voting.VoteSubmitter
	out   io.Writer
	opts  voting.Options
}

// New creates a session
func New(pages PageLoader, votes voting.VoteSubmitter, out io.Writer, opts voting.Options) *Session {
	return &Session{
		pages: pages,
		votes: votes,
		out:   out,
		opts:  opts,
	}
}

// Run votes until the input ends, the user quits or ctx is cancelled.
// Closing the input is like closing the browser tab: whatever the page
// was doing stops.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := console.Lines(ctx, in)

	for loads := 1; ; loads++ {
		state, err := s.pages.Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to load voting page: %w", err)
		}

		log.Debug().
			Int("load", loads).
			Str("variant", state.Variant().String()).
			Bool("waiting", state.Waiting).
			Msg("Voting page loaded")

		quit, err := s.runPage(ctx, state, lines)
		if err != nil || quit {
			return err
		}
	}
}

// runPage runs one page's controller. It reports quit when the user or the
// input ended the session.
func (s *Session) runPage(ctx context.Context, state models.PageState, lines <-chan string) (bool, error) {
	pageCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := console.NewView(page.NewDocument(state), s.out)
	ctrl := voting.NewController(state, view, s.votes, s.opts)

	done := make(chan error, 1)
	go func() { done <- ctrl.Run(pageCtx) }()

	stop := func() (bool, error) {
		cancel()
		<-done
		return true, nil
	}

	for {
		select {
		case err := <-done:
			if err != nil {
				if ctx.Err() != nil {
					return true, nil
				}
				return true, err
			}
			return false, nil

		case line, ok := <-lines:
			if !ok {
				return stop()
			}
			choice, ok := console.ParseChoice(line, state.Pair)
			if !ok {
				fmt.Fprintln(s.out, "Type 1 or 2 to vote, q to quit.")
				continue
			}
			if choice.Quit {
				return stop()
			}
			ctrl.Click(choice.Name)
		}
	}
}
