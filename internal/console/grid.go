package console

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"pairvote/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Grid collects gallery thumbnails and prints them as a table
type Grid struct {
	out    io.Writer
	mu     sync.Mutex
	thumbs []models.Thumbnail
}

// NewGrid creates an empty gallery grid
func NewGrid(out io.Writer) *Grid {
	return &Grid{out: out}
}

// AppendThumbnail adds one thumbnail
func (g *Grid) AppendThumbnail(thumb models.Thumbnail) {
	g.mu.Lock()
	g.thumbs = append(g.thumbs, thumb)
	g.mu.Unlock()
}

// Alert prints a message the user has to see
func (g *Grid) Alert(message string) {
	fmt.Fprintf(g.out, "! %s\n", message)
}

// Thumbnails returns the thumbnails appended so far
func (g *Grid) Thumbnails() []models.Thumbnail {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.Thumbnail, len(g.thumbs))
	copy(out, g.thumbs)
	return out
}

// Render returns the gallery table
func (g *Grid) Render() string {
	thumbs := g.Thumbnails()

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Image"})
	for i, th := range thumbs {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), th.Href})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d images", len(thumbs))})

	return tw.Render()
}

// Flush writes the table to the output
func (g *Grid) Flush() error {
	_, err := fmt.Fprintln(g.out, g.Render())
	return err
}
