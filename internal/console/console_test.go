package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"pairvote/internal/models"
	"pairvote/internal/page"
)

func testState() models.PageState {
	return models.PageState{Pair: models.ImagePair{
		First:  models.Candidate{Name: "a.png", Src: "/generated/a.png"},
		Second: models.Candidate{Name: "b.png", Src: "/generated/b.png"},
	}}
}

func TestViewPrintsPromptAndKeepsDocument(t *testing.T) {
	var buf bytes.Buffer
	doc := page.NewDocument(testState())
	v := NewView(doc, &buf)

	v.SetLocked(false)
	v.SetProgress("147 283", "0:03")
	v.Alert("Your vote could not be submitted. Please try again.")

	out := buf.String()
	for _, want := range []string{"[1] a.png  /generated/a.png", "[2] b.png  /generated/b.png", "0:03 [##########..........]", "! Your vote"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("non-terminal output must not be coloured")
	}

	snap := doc.Snapshot()
	if snap.DashArray != "147 283" || snap.TimerLabel != "0:03" || len(snap.Alerts) != 1 {
		t.Errorf("document out of sync: %+v", snap)
	}
}

func TestProgressBar(t *testing.T) {
	tests := map[string]string{
		"283 283": "[####]",
		"0 283":   "[....]",
		"garbage": "",
	}
	for in, want := range tests {
		if got := progressBar(in, 4); got != want {
			t.Errorf("progressBar(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseChoice(t *testing.T) {
	pair := testState().Pair
	tests := []struct {
		line   string
		want   Choice
		wantOK bool
	}{
		{line: "1", want: Choice{Name: "a.png"}, wantOK: true},
		{line: " 2 ", want: Choice{Name: "b.png"}, wantOK: true},
		{line: "b.png", want: Choice{Name: "b.png"}, wantOK: true},
		{line: "q", want: Choice{Quit: true}, wantOK: true},
		{line: "3"},
		{line: ""},
	}
	for _, tt := range tests {
		got, ok := ParseChoice(tt.line, pair)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseChoice(%q) = %+v, %v; want %+v, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLines(t *testing.T) {
	var got []string
	for line := range Lines(context.Background(), strings.NewReader("1\n2\nq\n")) {
		got = append(got, line)
	}
	if strings.Join(got, ",") != "1,2,q" {
		t.Errorf("lines = %v", got)
	}
}

func TestGridRender(t *testing.T) {
	var buf bytes.Buffer
	g := NewGrid(&buf)
	g.AppendThumbnail(models.NewThumbnail("/img/1.jpg"))
	g.AppendThumbnail(models.NewThumbnail("/img/2.jpg"))

	if err := g.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	out := buf.String()
	first := strings.Index(out, "/img/1.jpg")
	second := strings.Index(out, "/img/2.jpg")
	if first < 0 || second < 0 || first > second {
		t.Errorf("images missing or out of order:\n%s", out)
	}
	if !strings.Contains(strings.ToLower(out), "2 images") {
		t.Errorf("footer missing:\n%s", out)
	}
}
