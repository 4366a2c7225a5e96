package page

import (
	"sync"

	"pairvote/internal/models"
)

// Document is the live, in-memory copy of a rendered voting page.
// The controller changes only transient UI attributes on it.
type Document struct {
	mu sync.RWMutex

	state           models.PageState
	image1Src       string
	image2Src       string
	locked          bool
	containerHidden bool
	headlineHidden  bool
	messageVisible  bool
	dashArray       string
	timerLabel      string
	alerts          []string
	reloaded        bool
}

// Snapshot is a point-in-time copy of a Document
type Snapshot struct {
	Image1Src       string
	Image2Src       string
	Locked          bool
	ContainerHidden bool
	HeadlineHidden  bool
	MessageVisible  bool
	DashArray       string
	TimerLabel      string
	Alerts          []string
	Reloaded        bool
}

// NewDocument creates a document for a freshly rendered page
func NewDocument(state models.PageState) *Document {
	d := &Document{
		state:     state,
		image1Src: state.Pair.First.Src,
		image2Src: state.Pair.Second.Src,
	}
	if state.Waiting {
		d.containerHidden = true
		d.headlineHidden = true
		d.messageVisible = true
	}
	return d
}

// State returns the server-embedded state the page was rendered with
func (d *Document) State() models.PageState {
	return d.state
}

// Snapshot copies the current UI attributes
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	alerts := make([]string, len(d.alerts))
	copy(alerts, d.alerts)

	return Snapshot{
		Image1Src:       d.image1Src,
		Image2Src:       d.image2Src,
		Locked:          d.locked,
		ContainerHidden: d.containerHidden,
		HeadlineHidden:  d.headlineHidden,
		MessageVisible:  d.messageVisible,
		DashArray:       d.dashArray,
		TimerLabel:      d.timerLabel,
		Alerts:          alerts,
		Reloaded:        d.reloaded,
	}
}

// SetLocked toggles the "clicked" look on both candidates
func (d *Document) SetLocked(locked bool) {
	d.mu.Lock()
	d.locked = locked
	d.mu.Unlock()
}

// SetSources replaces both candidate image sources
func (d *Document) SetSources(image1, image2 string) {
	d.mu.Lock()
	d.image1Src = image1
	d.image2Src = image2
	d.mu.Unlock()
}

// ShowCooldown hides the images and headline and reveals the message area
func (d *Document) ShowCooldown() {
	d.mu.Lock()
	d.containerHidden = true
	d.headlineHidden = true
	d.messageVisible = true
	d.mu.Unlock()
}

// SetProgress writes the ring's stroke-dasharray and the timer label
func (d *Document) SetProgress(dashArray, label string) {
	d.mu.Lock()
	d.dashArray = dashArray
	d.timerLabel = label
	d.mu.Unlock()
}

// Alert records a blocking user-visible message
func (d *Document) Alert(message string) {
	d.mu.Lock()
	d.alerts = append(d.alerts, message)
	d.mu.Unlock()
}

// Reload flags the document as superseded. The next page load replaces it.
func (d *Document) Reload() {
	d.mu.Lock()
	d.reloaded = true
	d.mu.Unlock()
}
