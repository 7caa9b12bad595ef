package mediawiki

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// RenderedText fetches the rendered article HTML for a page and distills it
// to plain text. Used as a fallback when the raw-markup endpoint is not
// available for a title, so the item is kept with at least a prose summary.
func (c *Client) RenderedText(ctx context.Context, title string) (string, error) {
	pageURL := c.pageURL(title)

	body, err := c.get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch rendered page for %q: %w", title, err)
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse page url: %w", err)
	}

	// Let readability find the article body first; it strips the wiki chrome
	// better than a bare selector.
	article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
	if err == nil {
		if text := normalizeText(article.TextContent); text != "" {
			return text, nil
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse rendered HTML for %q: %w", title, err)
	}

	content := doc.Find("#mw-content-text").First()
	content.Find("table, style, script, .infobox, .navbox").Remove()
	return normalizeText(content.Text()), nil
}

var whitespaceRuns = regexp.MustCompile(`[ \t]+`)

func normalizeText(s string) string {
	s = whitespaceRuns.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
