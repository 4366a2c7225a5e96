package page

import (
	"fmt"
	"io"
	"strings"

	"pairvote/internal/models"

	"golang.org/x/net/html"
)

// Element ids and names the voting page is rendered with
const (
	Image1ID        = "image1"
	Image2ID        = "image2"
	TokenInputName  = "vote_token"
	WaitingMarkerID = "waiting"
	ProgressRingID  = "base-timer-path-remaining"
)

// Parse extracts the page state embedded by the server
func Parse(r io.Reader) (models.PageState, error) {
	root, err := html.Parse(r)
	if err != nil {
		return models.PageState{}, fmt.Errorf("failed to parse page: %w", err)
	}

	var (
		state         models.PageState
		first, second *html.Node
	)

	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch {
		case n.Data == "img" && attr(n, "id") == Image1ID:
			first = n
		case n.Data == "img" && attr(n, "id") == Image2ID:
			second = n
		case n.Data == "input" && attr(n, "name") == TokenInputName:
			state.HasToken = true
			state.Token = models.VoteToken(attr(n, "value"))
		case attr(n, "id") == WaitingMarkerID:
			state.Waiting = true
		}
	})

	// A waiting page may be rendered without candidates.
	if state.Waiting && first == nil && second == nil {
		return state, nil
	}

	if first == nil || second == nil {
		return models.PageState{}, fmt.Errorf("page is missing #%s or #%s", Image1ID, Image2ID)
	}

	state.Pair = models.ImagePair{
		First:  candidate(first),
		Second: candidate(second),
	}
	if err := state.Pair.Validate(); err != nil {
		return models.PageState{}, fmt.Errorf("invalid pair on page: %w", err)
	}

	return state, nil
}

func candidate(n *html.Node) models.Candidate {
	return models.Candidate{
		Name: attr(n, "data-name"),
		Src:  attr(n, "src"),
	}
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
