package mediawiki

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderedText(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head><title>Ghost Element</title></head>
<body>
<div id="mw-content-text">
<table class="infobox"><tr><td>chrome to drop</td></tr></table>
<p>Ghost Element is a strange resource found in deep caves.</p>
<p>It cannot be refined.</p>
</div>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Ghost_Element" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0, srv.Client())
	text, err := c.RenderedText(context.Background(), "Ghost Element")
	if err != nil {
		t.Fatalf("RenderedText: %v", err)
	}
	if !strings.Contains(text, "strange resource found in deep caves") {
		t.Errorf("article text missing from %q", text)
	}
	if !strings.Contains(text, "It cannot be refined.") {
		t.Errorf("second paragraph missing from %q", text)
	}
}

func TestRenderedTextFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0, srv.Client())
	if _, err := c.RenderedText(context.Background(), "Nope"); err == nil {
		t.Fatal("expected error for missing page")
	}
}

func TestNormalizeText(t *testing.T) {
	in := "  Line one \t has   runs  \n\n\n  Line two  \n\n"
	want := "Line one has runs\n\nLine two"
	if got := normalizeText(in); got != want {
		t.Errorf("normalizeText = %q, want %q", got, want)
	}
}
