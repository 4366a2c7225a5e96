package testsupport

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pairvote/internal/models"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// VotingServer fakes the voting site: the page, POST /vote and the
// gallery listing.
type VotingServer struct {
	*httptest.Server

	mu         sync.Mutex
	pages      []string
	pageLoads  int
	voteStatus int
	voteBody   string
	voteGate   <-chan struct{}
	votes      []models.VoteRequest
	requestIDs []string

	galleryStatus int
	galleryBody   string
}

// ServerOption customizes a VotingServer
type ServerOption func(*VotingServer)

// WithPages sets the HTML served on successive page loads. The last page
// repeats once the list is exhausted.
func WithPages(pages ...string) ServerOption {
	return func(s *VotingServer) {
		s.pages = pages
	}
}

// WithVoteResponse sets what POST /vote answers
func WithVoteResponse(status int, body string) ServerOption {
	return func(s *VotingServer) {
		s.voteStatus = status
		s.voteBody = body
	}
}

// WithVoteGate makes POST /vote wait until gate is closed
func WithVoteGate(gate <-chan struct{}) ServerOption {
	return func(s *VotingServer) {
		s.voteGate = gate
	}
}

// WithGallery sets what GET /get_all_images answers
func WithGallery(status int, body string) ServerOption {
	return func(s *VotingServer) {
		s.galleryStatus = status
		s.galleryBody = body
	}
}

// NewVotingServer starts a fake voting site closed with the test
func NewVotingServer(t testing.TB, opts ...ServerOption) *VotingServer {
	t.Helper()

	s := &VotingServer{
		pages:         []string{LegacyPage(DefaultPair())},
		voteStatus:    http.StatusOK,
		galleryStatus: http.StatusOK,
		galleryBody:   "[]",
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Post("/vote", s.handleVote)
	r.Get("/get_all_images", s.handleGallery)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)

	return s
}

func (s *VotingServer) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	idx := s.pageLoads
	if idx >= len(s.pages) {
		idx = len(s.pages) - 1
	}
	body := s.pages[idx]
	s.pageLoads++
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, body)
}

func (s *VotingServer) handleVote(w http.ResponseWriter, r *http.Request) {
	var vote models.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&vote); err != nil {
		http.Error(w, "invalid vote", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.votes = append(s.votes, vote)
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
	gate := s.voteGate
	status, body := s.voteStatus, s.voteBody
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func (s *VotingServer) handleGallery(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status, body := s.galleryStatus, s.galleryBody
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// Votes returns the votes received so far
func (s *VotingServer) Votes() []models.VoteRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.VoteRequest, len(s.votes))
	copy(out, s.votes)
	return out
}

// VoteRequestIDs returns the X-Request-ID of every vote received
func (s *VotingServer) VoteRequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requestIDs))
	copy(out, s.requestIDs)
	return out
}

// PageLoads returns how many times the page was served
func (s *VotingServer) PageLoads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageLoads
}

// DefaultPair is the pair the fake site serves unless told otherwise
func DefaultPair() models.ImagePair {
	return models.ImagePair{
		First:  models.Candidate{Name: "a.png", Src: "/generated/a.png"},
		Second: models.Candidate{Name: "b.png", Src: "/generated/b.png"},
	}
}

// LegacyPage renders a voting page without a vote token
func LegacyPage(pair models.ImagePair) string {
	return votingPage(pair, "")
}

// TokenPage renders a voting page carrying a vote token
func TokenPage(pair models.ImagePair, token models.VoteToken) string {
	input := fmt.Sprintf(`<input type="hidden" name="vote_token" value="%s">`, html.EscapeString(string(token)))
	return votingPage(pair, input)
}

// WaitingPage renders the cool-down page shown right after a vote
func WaitingPage() string {
	return `<!DOCTYPE html>
<html><body>
<div id="message"><p id="waiting">Thanks! Next pair in a moment.</p></div>
<svg class="base-timer__svg"><path id="base-timer-path-remaining" stroke-dasharray="283"></path></svg>
<span id="base-timer-label">0:05</span>
</body></html>`
}

func votingPage(pair models.ImagePair, extra string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><body>
<h1>Which one is better?</h1>
%s
<div class="image-container">
  <img id="image1" class="voting-image" data-name="%s" src="%s">
  <img id="image2" class="voting-image" data-name="%s" src="%s">
</div>
<div id="message" hidden></div>
</body></html>`,
		extra,
		html.EscapeString(pair.First.Name), html.EscapeString(pair.First.Src),
		html.EscapeString(pair.Second.Name), html.EscapeString(pair.Second.Src),
	)
}
