package voting

import (
	"errors"
	"fmt"

	"pairvote/internal/countdown"
	"pairvote/internal/models"
)

// VoteFailedMessage is the alert shown when a vote could not be submitted
const VoteFailedMessage = "Your vote could not be submitted. Please try again."

// ErrUnexpectedOutcome is reported when a vote succeeds with an outcome the
// controller cannot handle
var ErrUnexpectedOutcome = errors.New("unexpected vote outcome")

// State of the voting controller
type State int32

const (
	Idle State = iota
	Submitting
	CoolingDown
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case CoolingDown:
		return "cooling_down"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Snapshot is everything a transition needs to know
type Snapshot struct {
	State     State
	Variant   models.Variant
	Pair      models.ImagePair
	Token     models.VoteToken
	Waiting   bool
	TimeLimit int
	ArcLength int
}

// NewSnapshot builds the initial snapshot for a rendered page
func NewSnapshot(page models.PageState, timeLimit, arcLength int) Snapshot {
	return Snapshot{
		State:     Idle,
		Variant:   page.Variant(),
		Pair:      page.Pair,
		Token:     page.Token,
		Waiting:   page.Waiting,
		TimeLimit: timeLimit,
		ArcLength: arcLength,
	}
}

// Event is something that happened to the page
type Event interface {
	event()
}

// Ready fires once when the page is loaded
type Ready struct{}

// Clicked fires when a candidate image is clicked
type Clicked struct {
	Name string
}

// VoteSucceeded carries the decoded response of POST /vote
type VoteSucceeded struct {
	Outcome models.VoteOutcome
}

// VoteFailed carries any error of POST /vote
type VoteFailed struct {
	Err error
}

// Ticked fires on every countdown tick with time left
type Ticked struct {
	Timer models.TimerState
}

// Expired fires once when the countdown runs out
type Expired struct{}

func (Ready) event()         {}
func (Clicked) event()       {}
func (VoteSucceeded) event() {}
func (VoteFailed) event()    {}
func (Ticked) event()        {}
func (Expired) event()       {}

// Effect is work the controller performs after a transition
type Effect interface {
	effect()
}

// LockCandidates marks both images clicked and stops taking clicks
type LockCandidates struct{}

// UnlockCandidates restores both images and takes clicks again
type UnlockCandidates struct{}

// PostVote sends the vote
type PostVote struct {
	Request models.VoteRequest
}

// ReplaceSources swaps in a fresh pair of image sources
type ReplaceSources struct {
	Image1 string
	Image2 string
}

// EnterCooldownView hides the images and headline and shows the message area
type EnterCooldownView struct{}

// StartCountdown starts the tick source
type StartCountdown struct{}

// RenderProgress updates the progress ring and label
type RenderProgress struct {
	DashArray string
	Label     string
}

// ReportError writes to the diagnostic log
type ReportError struct {
	Err error
}

// AlertUser shows a blocking message
type AlertUser struct {
	Message string
}

// Reload replaces the page. It ends the controller.
type Reload struct{}

func (LockCandidates) effect()    {}
func (UnlockCandidates) effect()  {}
func (PostVote) effect()          {}
func (ReplaceSources) effect()    {}
func (EnterCooldownView) effect() {}
func (StartCountdown) effect()    {}
func (RenderProgress) effect()    {}
func (ReportError) effect()       {}
func (AlertUser) effect()         {}
func (Reload) effect()            {}

// Transition is the controller's state machine. It has no side effects;
// events that make no sense in the current state are ignored.
func Transition(s Snapshot, ev Event) (Snapshot, []Effect) {
	switch ev := ev.(type) {
	case Ready:
		if s.State != Idle {
			return s, nil
		}
		if s.Waiting {
			return startCooldown(s, nil)
		}
		return s, []Effect{UnlockCandidates{}}

	case Clicked:
		if s.State != Idle {
			return s, nil
		}
		var token models.VoteToken
		if s.Variant == models.VariantCooldown {
			token = s.Token
		}
		req, err := models.NewVoteRequest(s.Pair, ev.Name, token)
		if err != nil {
			return s, nil
		}
		s.State = Submitting
		return s, []Effect{LockCandidates{}, PostVote{Request: req}}

	case VoteSucceeded:
		if s.State != Submitting {
			return s, nil
		}
		switch outcome := ev.Outcome.(type) {
		case models.NewPairOutcome:
			s.State = Idle
			s.Pair.First.Src = outcome.Image1
			s.Pair.Second.Src = outcome.Image2
			return s, []Effect{
				UnlockCandidates{},
				ReplaceSources{Image1: outcome.Image1, Image2: outcome.Image2},
			}
		case models.CooldownOutcome:
			return startCooldown(s, []Effect{EnterCooldownView{}})
		default:
			return fail(s, fmt.Errorf("%w: %T", ErrUnexpectedOutcome, ev.Outcome))
		}

	case VoteFailed:
		if s.State != Submitting {
			return s, nil
		}
		return fail(s, ev.Err)

	case Ticked:
		if s.State != CoolingDown || ev.Timer.Done() {
			return s, nil
		}
		return s, []Effect{progress(s, ev.Timer)}

	case Expired:
		if s.State != CoolingDown {
			return s, nil
		}
		return s, []Effect{Reload{}}
	}

	return s, nil
}

func startCooldown(s Snapshot, effects []Effect) (Snapshot, []Effect) {
	s.State = CoolingDown
	initial := countdown.Timer{Limit: s.TimeLimit}.Initial()
	return s, append(effects, progress(s, initial), StartCountdown{})
}

func progress(s Snapshot, t models.TimerState) RenderProgress {
	return RenderProgress{
		DashArray: countdown.DashArray(t, s.ArcLength),
		Label:     countdown.FormatLabel(t.TimeLeft),
	}
}

// fail reports the error and alerts. Legacy pages take clicks again so the
// same pair can be retried; cool-down pages stay locked until reloaded.
func fail(s Snapshot, err error) (Snapshot, []Effect) {
	effects := []Effect{ReportError{Err: err}}
	if s.Variant == models.VariantLegacy {
		s.State = Idle
		effects = append(effects, UnlockCandidates{})
	} else {
		s.State = Failed
	}
	return s, append(effects, AlertUser{Message: VoteFailedMessage})
}
