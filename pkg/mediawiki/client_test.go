package mediawiki

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestCategoryMembersPagination(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("cmtitle") != "Category:Products" {
			t.Errorf("cmtitle = %q", q.Get("cmtitle"))
		}

		requests++
		w.Header().Set("Content-Type", "application/json")
		switch q.Get("cmcontinue") {
		case "":
			// First page, with a subcategory entry that must be filtered out.
			fmt.Fprint(w, `{
				"continue": {"cmcontinue": "page|2"},
				"query": {"categorymembers": [
					{"ns": 0, "title": "Carbon"},
					{"ns": 14, "title": "Category:Sub"},
					{"ns": 0, "title": "Oxygen"}
				]}
			}`)
		case "page|2":
			fmt.Fprint(w, `{
				"query": {"categorymembers": [
					{"ns": 0, "title": "Sodium"}
				]}
			}`)
		default:
			t.Errorf("unexpected cmcontinue %q", q.Get("cmcontinue"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-agent", 0, srv.Client())
	titles, err := c.CategoryMembers(context.Background(), "Products")
	if err != nil {
		t.Fatalf("CategoryMembers: %v", err)
	}

	want := []string{"Carbon", "Oxygen", "Sodium"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	if requests != 2 {
		t.Errorf("made %d requests, want 2", requests)
	}
}

func TestRawPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Condensed_Carbon" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("action") != "raw" {
			t.Errorf("action = %q", r.URL.Query().Get("action"))
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		fmt.Fprint(w, "{{Resource infobox|name = Condensed Carbon}}")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-agent", 0, srv.Client())
	raw, err := c.RawPage(context.Background(), "Condensed Carbon")
	if err != nil {
		t.Fatalf("RawPage: %v", err)
	}
	if raw != "{{Resource infobox|name = Condensed Carbon}}" {
		t.Errorf("raw = %q", raw)
	}
}

func TestRawPageNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0, srv.Client())
	if _, err := c.RawPage(context.Background(), "Missing Page"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestCategoryMembersCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query": {"categorymembers": []}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "", 0, srv.Client())
	if _, err := c.CategoryMembers(ctx, "Products"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
