package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"pairvote/internal/models"
)

// Choice is one line of user input
type Choice struct {
	Name string
	Quit bool
}

// ParseChoice maps "1"/"2" or a candidate name to a vote. "q" quits.
func ParseChoice(line string, pair models.ImagePair) (Choice, bool) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return Choice{}, false
	case "q", "quit", "exit":
		return Choice{Quit: true}, true
	case "1":
		return Choice{Name: pair.First.Name}, pair.First.Name != ""
	case "2":
		return Choice{Name: pair.Second.Name}, pair.Second.Name != ""
	}
	if pair.Contains(line) {
		return Choice{Name: line}, true
	}
	return Choice{}, false
}

// Lines streams input lines until EOF or ctx ends. The channel is closed
// when input ends.
func Lines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
