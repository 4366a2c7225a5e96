package voting

import (
	"errors"
	"reflect"
	"testing"

	"pairvote/internal/models"
)

func pagePair() models.ImagePair {
	return models.ImagePair{
		First:  models.Candidate{Name: "a.png", Src: "/generated/a.png"},
		Second: models.Candidate{Name: "b.png", Src: "/generated/b.png"},
	}
}

func legacySnapshot() Snapshot {
	return NewSnapshot(models.PageState{Pair: pagePair()}, 5, 283)
}

func cooldownSnapshot() Snapshot {
	return NewSnapshot(models.PageState{Pair: pagePair(), Token: "tok-1", HasToken: true}, 5, 283)
}

func TestReadyArmsCandidates(t *testing.T) {
	s, effects := Transition(legacySnapshot(), Ready{})
	if s.State != Idle {
		t.Errorf("state = %v, want idle", s.State)
	}
	if !reflect.DeepEqual(effects, []Effect{UnlockCandidates{}}) {
		t.Errorf("effects = %#v", effects)
	}
}

func TestReadyOnWaitingPageStartsCountdown(t *testing.T) {
	snap := NewSnapshot(models.PageState{Waiting: true, HasToken: true}, 5, 283)
	s, effects := Transition(snap, Ready{})
	if s.State != CoolingDown {
		t.Fatalf("state = %v, want cooling_down", s.State)
	}
	want := []Effect{RenderProgress{DashArray: "283 283", Label: "0:05"}, StartCountdown{}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %#v, want %#v", effects, want)
	}
}

func TestClickLocksAndPosts(t *testing.T) {
	s, effects := Transition(legacySnapshot(), Clicked{Name: "b.png"})
	if s.State != Submitting {
		t.Fatalf("state = %v, want submitting", s.State)
	}
	want := []Effect{
		LockCandidates{},
		PostVote{Request: models.VoteRequest{Img1: "a.png", Img2: "b.png", Winner: "b.png"}},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %#v, want %#v", effects, want)
	}
}

func TestClickCarriesTokenOnlyOnCooldownPages(t *testing.T) {
	_, effects := Transition(cooldownSnapshot(), Clicked{Name: "a.png"})
	post, ok := effects[1].(PostVote)
	if !ok || post.Request.VoteToken != "tok-1" {
		t.Errorf("expected token on vote, got %#v", effects)
	}

	legacy := legacySnapshot()
	legacy.Token = "stray"
	_, effects = Transition(legacy, Clicked{Name: "a.png"})
	post, ok = effects[1].(PostVote)
	if !ok || post.Request.VoteToken != "" {
		t.Errorf("legacy vote must not carry a token, got %#v", effects)
	}
}

func TestOnlyOneVotePerPair(t *testing.T) {
	s := legacySnapshot()
	posts := 0
	for _, name := range []string{"a.png", "a.png", "b.png", "a.png"} {
		var effects []Effect
		s, effects = Transition(s, Clicked{Name: name})
		for _, eff := range effects {
			if post, ok := eff.(PostVote); ok {
				posts++
				if post.Request.Winner != post.Request.Img1 && post.Request.Winner != post.Request.Img2 {
					t.Errorf("winner %q not in pair", post.Request.Winner)
				}
			}
		}
	}
	if posts != 1 {
		t.Errorf("posted %d votes for one pair, want 1", posts)
	}
}

func TestClickUnknownCandidateIgnored(t *testing.T) {
	s, effects := Transition(legacySnapshot(), Clicked{Name: "zzz.png"})
	if s.State != Idle || len(effects) != 0 {
		t.Errorf("state = %v, effects = %#v", s.State, effects)
	}
}

func TestNewPairOutcome(t *testing.T) {
	s, _ := Transition(legacySnapshot(), Clicked{Name: "a.png"})
	s, effects := Transition(s, VoteSucceeded{Outcome: models.NewPairOutcome{Image1: "c.png", Image2: "d.png"}})

	if s.State != Idle {
		t.Fatalf("state = %v, want idle", s.State)
	}
	want := []Effect{UnlockCandidates{}, ReplaceSources{Image1: "c.png", Image2: "d.png"}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %#v, want %#v", effects, want)
	}
	if s.Pair.First.Src != "c.png" || s.Pair.Second.Src != "d.png" {
		t.Errorf("pair sources = %+v", s.Pair)
	}

	// The next click is accepted.
	s, effects = Transition(s, Clicked{Name: "b.png"})
	if s.State != Submitting || len(effects) != 2 {
		t.Errorf("second click not accepted: %v %#v", s.State, effects)
	}
}

func TestCooldownOutcome(t *testing.T) {
	s, _ := Transition(cooldownSnapshot(), Clicked{Name: "a.png"})
	s, effects := Transition(s, VoteSucceeded{Outcome: models.CooldownOutcome{}})

	if s.State != CoolingDown {
		t.Fatalf("state = %v, want cooling_down", s.State)
	}
	want := []Effect{
		EnterCooldownView{},
		RenderProgress{DashArray: "283 283", Label: "0:05"},
		StartCountdown{},
	}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %#v, want %#v", effects, want)
	}
}

func TestFailureRecovery(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name       string
		snap       Snapshot
		wantState  State
		wantUnlock bool
	}{
		{name: "legacy re-arms", snap: legacySnapshot(), wantState: Idle, wantUnlock: true},
		{name: "cooldown stays locked", snap: cooldownSnapshot(), wantState: Failed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := Transition(tt.snap, Clicked{Name: "a.png"})
			s, effects := Transition(s, VoteFailed{Err: boom})
			if s.State != tt.wantState {
				t.Fatalf("state = %v, want %v", s.State, tt.wantState)
			}

			var reported, alerted, unlocked bool
			for _, eff := range effects {
				switch eff := eff.(type) {
				case ReportError:
					reported = errors.Is(eff.Err, boom)
				case AlertUser:
					alerted = eff.Message == VoteFailedMessage
				case UnlockCandidates:
					unlocked = true
				case ReplaceSources:
					t.Error("failure must not touch the image sources")
				}
			}
			if !reported || !alerted {
				t.Errorf("reported=%v alerted=%v", reported, alerted)
			}
			if unlocked != tt.wantUnlock {
				t.Errorf("unlocked = %v, want %v", unlocked, tt.wantUnlock)
			}
		})
	}
}

func TestFailedCooldownPageIgnoresClicks(t *testing.T) {
	s, _ := Transition(cooldownSnapshot(), Clicked{Name: "a.png"})
	s, _ = Transition(s, VoteFailed{Err: errors.New("down")})
	s, effects := Transition(s, Clicked{Name: "b.png"})
	if s.State != Failed || len(effects) != 0 {
		t.Errorf("state = %v, effects = %#v", s.State, effects)
	}
}

func TestUnexpectedOutcomeFails(t *testing.T) {
	s, _ := Transition(legacySnapshot(), Clicked{Name: "a.png"})
	_, effects := Transition(s, VoteSucceeded{Outcome: nil})
	report, ok := effects[0].(ReportError)
	if !ok || !errors.Is(report.Err, ErrUnexpectedOutcome) {
		t.Errorf("effects = %#v", effects)
	}
}

func TestCountdownEvents(t *testing.T) {
	s, _ := Transition(cooldownSnapshot(), Clicked{Name: "a.png"})
	s, _ = Transition(s, VoteSucceeded{Outcome: models.CooldownOutcome{}})

	_, effects := Transition(s, Ticked{Timer: models.TimerState{TimePassed: 1, TimeLeft: 4, Limit: 5}})
	want := []Effect{RenderProgress{DashArray: "215 283", Label: "0:04"}}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("tick effects = %#v, want %#v", effects, want)
	}

	_, effects = Transition(s, Ticked{Timer: models.TimerState{TimePassed: 5, TimeLeft: 0, Limit: 5}})
	if len(effects) != 0 {
		t.Errorf("an expired timer must not render, got %#v", effects)
	}

	_, effects = Transition(s, Expired{})
	if !reflect.DeepEqual(effects, []Effect{Reload{}}) {
		t.Errorf("expiry effects = %#v", effects)
	}
}

func TestStrayEventsIgnored(t *testing.T) {
	idle := legacySnapshot()
	for _, ev := range []Event{
		VoteSucceeded{Outcome: models.CooldownOutcome{}},
		VoteFailed{Err: errors.New("late")},
		Ticked{Timer: models.TimerState{TimeLeft: 3, Limit: 5}},
		Expired{},
	} {
		s, effects := Transition(idle, ev)
		if s != idle || len(effects) != 0 {
			t.Errorf("%T changed an idle controller: %v %#v", ev, s.State, effects)
		}
	}
}
