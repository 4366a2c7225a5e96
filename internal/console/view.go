// Package console renders the voting page and the gallery on a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"pairvote/internal/page"

	"github.com/mattn/go-isatty"
)

const (
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// View prints page changes as they happen. It keeps the page document in
// sync so the session can inspect it.
type View struct {
	doc   *page.Document
	out   io.Writer
	color bool
	mu    sync.Mutex
}

// NewView creates a view writing to out
func NewView(doc *page.Document, out io.Writer) *View {
	return &View{
		doc:   doc,
		out:   out,
		color: IsTerminal(out),
	}
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Document returns the page the view renders
func (v *View) Document() *page.Document {
	return v.doc
}

// SetLocked prints the voting prompt whenever the candidates take clicks
func (v *View) SetLocked(locked bool) {
	v.doc.SetLocked(locked)
	if locked {
		v.printf(ansiDim, "Submitting vote...")
		return
	}

	pair := v.doc.State().Pair
	snap := v.doc.Snapshot()
	v.printf(ansiBold, "Which one is better?")
	v.printf("", "  [1] %s  %s", pair.First.Name, snap.Image1Src)
	v.printf("", "  [2] %s  %s", pair.Second.Name, snap.Image2Src)
}

// SetSources updates the candidate images
func (v *View) SetSources(image1, image2 string) {
	v.doc.SetSources(image1, image2)
	v.printf(ansiDim, "New pair: %s | %s", image1, image2)
}

// ShowCooldown switches to the thank-you message
func (v *View) ShowCooldown() {
	v.doc.ShowCooldown()
	v.printf(ansiBold, "Thanks for voting! The next pair is on its way.")
}

// SetProgress prints the remaining time with a bar scaled from the ring
func (v *View) SetProgress(dashArray, label string) {
	v.doc.SetProgress(dashArray, label)
	v.printf(ansiDim, "%s %s", label, progressBar(dashArray, 20))
}

// Alert prints a message the user has to see
func (v *View) Alert(message string) {
	v.doc.Alert(message)
	v.printf(ansiRed, "! %s", message)
}

// Reload marks the page as superseded
func (v *View) Reload() {
	v.doc.Reload()
	v.printf(ansiDim, "Reloading...")
}

func (v *View) printf(style, format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()

	line := fmt.Sprintf(format, args...)
	if v.color && style != "" {
		line = style + line + ansiReset
	}
	fmt.Fprintln(v.out, line)
}

// progressBar turns a "drawn total" dash array into a bar of width cells
func progressBar(dashArray string, width int) string {
	var drawn, total int
	if _, err := fmt.Sscanf(dashArray, "%d %d", &drawn, &total); err != nil || total <= 0 {
		return ""
	}
	filled := drawn * width / total
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
