// Package mediawiki talks to a MediaWiki-based site: category membership
// queries via api.php and raw wikitext via the ?action=raw page endpoint.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a synchronous MediaWiki HTTP client. A fixed politeness delay is
// applied between successive requests; there are no retries.
type Client struct {
	baseURL   string
	userAgent string
	delay     time.Duration
	client    *http.Client

	lastRequest time.Time
}

// NewClient builds a client for one wiki. delay is the pause between
// successive requests; httpClient may be nil for the default.
func NewClient(baseURL, userAgent string, delay time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		delay:     delay,
		client:    httpClient,
	}
}

// categoryMembersResponse mirrors the api.php list=categorymembers shape
// (formatversion=2).
type categoryMembersResponse struct {
	Continue struct {
		CmContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			NS    int    `json:"ns"`
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// CategoryMembers returns the titles of every main-namespace page in a wiki
// category, following cmcontinue pagination.
func (c *Client) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	var titles []string
	cont := ""

	for {
		params := url.Values{}
		params.Set("action", "query")
		params.Set("list", "categorymembers")
		params.Set("cmtitle", "Category:"+category)
		params.Set("cmlimit", "500")
		params.Set("format", "json")
		params.Set("formatversion", "2")
		if cont != "" {
			params.Set("cmcontinue", cont)
		}

		body, err := c.get(ctx, c.baseURL+"/api.php?"+params.Encode())
		if err != nil {
			return titles, fmt.Errorf("failed to list category %q: %w", category, err)
		}

		var resp categoryMembersResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return titles, fmt.Errorf("failed to decode category %q response: %w", category, err)
		}

		for _, m := range resp.Query.CategoryMembers {
			// Only main-namespace pages; subcategory and file entries are
			// not items.
			if m.NS == 0 {
				titles = append(titles, m.Title)
			}
		}

		cont = resp.Continue.CmContinue
		if cont == "" {
			return titles, nil
		}
	}
}

// RawPage fetches the raw wikitext of one page by title.
func (c *Client) RawPage(ctx context.Context, title string) (string, error) {
	body, err := c.get(ctx, c.pageURL(title)+"?action=raw")
	if err != nil {
		return "", fmt.Errorf("failed to fetch raw markup for %q: %w", title, err)
	}
	return string(body), nil
}

func (c *Client) pageURL(title string) string {
	slug := url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	return c.baseURL + "/wiki/" + slug
}

// get performs one throttled GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// throttle enforces the politeness delay between successive requests. Plain
// fixed delay: no jitter, no backoff.
func (c *Client) throttle(ctx context.Context) error {
	if c.delay > 0 && !c.lastRequest.IsZero() {
		wait := c.delay - time.Since(c.lastRequest)
		if wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	c.lastRequest = time.Now()
	return nil
}
