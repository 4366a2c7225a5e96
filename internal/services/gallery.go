package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GalleryService lists every submitted image through GET /get_all_images
type GalleryService struct {
	client *Client
}

// NewGalleryService creates a new gallery service
func NewGalleryService(client *Client) *GalleryService {
	return &GalleryService{
		client: client,
	}
}

// ListImages returns the image URLs in server order
func (s *GalleryService) ListImages(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.endpoint("/get_all_images"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build gallery request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch images: %w", err)
	}
	defer resp.Body.Close()

	var urls []string
	if err := json.NewDecoder(resp.Body).Decode(&urls); err != nil {
		return nil, fmt.Errorf("%w: image list: %w", ErrMalformedResponse, err)
	}

	return urls, nil
}
