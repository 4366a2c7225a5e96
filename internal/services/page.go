package services

import (
	"context"
	"fmt"
	"net/http"

	"pairvote/internal/models"
	"pairvote/internal/page"
)

// PageService loads the voting page. Loading it again is the reload.
type PageService struct {
	client *Client
}

// NewPageService creates a new page service
func NewPageService(client *Client) *PageService {
	return &PageService{
		client: client,
	}
}

// Load fetches and parses the voting page
func (s *PageService) Load(ctx context.Context) (models.PageState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.endpoint("/"), nil)
	if err != nil {
		return models.PageState{}, fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.do(req)
	if err != nil {
		return models.PageState{}, fmt.Errorf("failed to load page: %w", err)
	}
	defer resp.Body.Close()

	state, err := page.Parse(resp.Body)
	if err != nil {
		return models.PageState{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return state, nil
}
