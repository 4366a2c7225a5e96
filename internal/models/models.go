package models

import (
	"errors"
	"fmt"
)

// ErrUnknownCandidate is returned when a vote names an image outside the pair
var ErrUnknownCandidate = errors.New("winner is not part of the pair")

// Candidate represents one of the two images offered for comparison
type Candidate struct {
	Name string `json:"name"`
	Src  string `json:"src"`
}

// ImagePair represents the two candidates currently on the page
type ImagePair struct {
	First  Candidate `json:"first"`
	Second Candidate `json:"second"`
}

// Validate checks that both candidates are named and the names differ
func (p ImagePair) Validate() error {
	if p.First.Name == "" || p.Second.Name == "" {
		return fmt.Errorf("both candidates need a name")
	}
	if p.First.Name == p.Second.Name {
		return fmt.Errorf("candidate names must be unique, got %q twice", p.First.Name)
	}
	return nil
}

// Contains reports whether name identifies one of the candidates
func (p ImagePair) Contains(name string) bool {
	return name != "" && (p.First.Name == name || p.Second.Name == name)
}

// VoteToken is the opaque single-use value issued with a served pair
type VoteToken string

// VoteRequest represents the body of POST /vote
type VoteRequest struct {
	Img1      string    `json:"img1"`
	Img2      string    `json:"img2"`
	Winner    string    `json:"winner"`
	VoteToken VoteToken `json:"vote_token,omitempty"`
}

// NewVoteRequest builds a vote for winner, which must be one of the pair
func NewVoteRequest(pair ImagePair, winner string, token VoteToken) (VoteRequest, error) {
	if !pair.Contains(winner) {
		return VoteRequest{}, fmt.Errorf("%w: %q", ErrUnknownCandidate, winner)
	}
	return VoteRequest{
		Img1:      pair.First.Name,
		Img2:      pair.Second.Name,
		Winner:    winner,
		VoteToken: token,
	}, nil
}

// VoteOutcome is the decoded result of a successful vote submission.
// It is either NewPairOutcome or CooldownOutcome.
type VoteOutcome interface {
	voteOutcome()
}

// NewPairOutcome carries a fresh pair of image sources (legacy response)
type NewPairOutcome struct {
	Image1 string `json:"image1"`
	Image2 string `json:"image2"`
}

// CooldownOutcome acknowledges the vote and asks the client to wait
type CooldownOutcome struct{}

func (NewPairOutcome) voteOutcome()  {}
func (CooldownOutcome) voteOutcome() {}

// TimerState represents the countdown progress
type TimerState struct {
	TimePassed int `json:"time_passed"`
	TimeLeft   int `json:"time_left"`
	Limit      int `json:"limit"`
}

// Done reports whether the countdown has expired
func (s TimerState) Done() bool {
	return s.TimeLeft == 0
}

// Variant selects how the page behaves after a vote
type Variant int

const (
	// VariantLegacy pages carry no vote token and expect a fresh pair back
	VariantLegacy Variant = iota
	// VariantCooldown pages carry a vote token and wait before reloading
	VariantCooldown
)

func (v Variant) String() string {
	switch v {
	case VariantLegacy:
		return "legacy"
	case VariantCooldown:
		return "cooldown"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// PageState is what the server embedded in the rendered voting page
type PageState struct {
	Pair     ImagePair `json:"pair"`
	Token    VoteToken `json:"token,omitempty"`
	HasToken bool      `json:"has_token"`
	Waiting  bool      `json:"waiting"`
}

// Variant returns the page configuration selected by the elements present
func (s PageState) Variant() Variant {
	if s.HasToken {
		return VariantCooldown
	}
	return VariantLegacy
}

// Thumbnail represents a gallery image wrapped in a link to itself
type Thumbnail struct {
	Href   string `json:"href"`
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Class  string `json:"class"`
	Target string `json:"target"`
}

// NewThumbnail builds the gallery entry for an image URL
func NewThumbnail(url string) Thumbnail {
	return Thumbnail{
		Href:   url,
		Src:    url,
		Alt:    "Gallery Image",
		Class:  "gallery-image",
		Target: "_blank",
	}
}
