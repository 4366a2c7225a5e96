// Package gallery renders every submitted image as a thumbnail linking to
// the full image.
package gallery

import (
	"context"
	"fmt"

	"pairvote/internal/models"

	"github.com/rs/zerolog/log"
)

// FailedMessage is the alert shown when the image list cannot be loaded
const FailedMessage = "Failed to load images. Please try again later."

// Source lists image URLs in display order
type Source interface {
	ListImages(ctx context.Context) ([]string, error)
}

// Container receives thumbnails one at a time
type Container interface {
	AppendThumbnail(thumb models.Thumbnail)
}

// Alerter shows a blocking user-visible message
type Alerter interface {
	Alert(message string)
}

// Loader fills a gallery container from a source. Load it once per page:
// a second Load appends every thumbnail again.
type Loader struct {
	source    Source
	container Container
	alerter   Alerter
}

// NewLoader creates a new gallery loader
func NewLoader(source Source, container Container, alerter Alerter) *Loader {
	return &Loader{
		source:    source,
		container: container,
		alerter:   alerter,
	}
}

// Load fetches the image list and appends a thumbnail per URL, in order.
// On failure it logs, alerts and returns the error; thumbnails already
// appended stay.
func (l *Loader) Load(ctx context.Context) error {
	urls, err := l.source.ListImages(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error fetching images")
		l.alerter.Alert(FailedMessage)
		return fmt.Errorf("failed to load gallery: %w", err)
	}

	for _, url := range urls {
		l.container.AppendThumbnail(models.NewThumbnail(url))
	}

	log.Debug().Int("images", len(urls)).Msg("Gallery loaded")
	return nil
}
