package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pairvote/internal/models"
)

// maxVoteResponse bounds how much of a vote response is read
const maxVoteResponse = 64 << 10

// VoteService submits votes to POST /vote
type VoteService struct {
	client *Client
}

// NewVoteService creates a new vote service
func NewVoteService(client *Client) *VoteService {
	return &VoteService{
		client: client,
	}
}

// SubmitVote posts the vote and decodes the response for the page variant
func (s *VoteService) SubmitVote(ctx context.Context, variant models.Variant, vote models.VoteRequest) (models.VoteOutcome, error) {
	body, err := json.Marshal(vote)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.endpoint("/vote"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build vote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit vote: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxVoteResponse))
	if err != nil {
		return nil, fmt.Errorf("%w: reading vote response: %w", ErrTransport, err)
	}

	return DecodeVoteResponse(variant, data)
}

// DecodeVoteResponse turns a 2xx vote response body into an outcome.
// A JSON object with both image1 and image2 is a fresh pair. Anything else
// is a cool-down acknowledgement, except on legacy pages which always
// expect a fresh pair.
func DecodeVoteResponse(variant models.Variant, body []byte) (models.VoteOutcome, error) {
	var pair struct {
		Image1 *string `json:"image1"`
		Image2 *string `json:"image2"`
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Unmarshal(trimmed, &pair) == nil &&
		pair.Image1 != nil && pair.Image2 != nil {
		return models.NewPairOutcome{Image1: *pair.Image1, Image2: *pair.Image2}, nil
	}

	if variant == models.VariantLegacy {
		return nil, fmt.Errorf("%w: expected {image1, image2}, got %q", ErrMalformedResponse, truncate(trimmed, 120))
	}

	return models.CooldownOutcome{}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
