// Package wikitext extracts semi-structured data from raw MediaWiki markup.
// Everything here is best-effort pattern matching: a miss yields an empty
// value, never an error.
package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

// Extraction is the structured result of scanning one page of raw markup.
type Extraction struct {
	Infobox      Infobox
	Sections     map[string]string
	Categories   []string
	RefinerLines []string
	CookingLines []string
}

// Infobox is the key/value parameter block of the first recognized infobox
// template on a page. Keys are lower-cased.
type Infobox struct {
	Kind   string
	Fields map[string]string
}

// Get returns the value for a lower-cased key, or "" when absent.
func (ib Infobox) Get(key string) string {
	return ib.Fields[key]
}

// infoboxTemplates is the ordered list of recognized template names. A page
// is assumed to carry at most one infobox; the first pattern that matches
// wins.
var infoboxTemplates = []struct {
	kind    string
	pattern *regexp.Regexp
}{
	{"technology", regexp.MustCompile(`(?is)\{\{Technology infobox\s*(.*?)\}\}`)},
	{"resource", regexp.MustCompile(`(?is)\{\{Resource infobox\s*(.*?)\}\}`)},
	{"product", regexp.MustCompile(`(?is)\{\{Product infobox\s*(.*?)\}\}`)},
	{"item", regexp.MustCompile(`(?is)\{\{Item infobox\s*(.*?)\}\}`)},
	{"starship", regexp.MustCompile(`(?is)\{\{Starship infobox\s*(.*?)\}\}`)},
	{"exocraft", regexp.MustCompile(`(?is)\{\{Exocraft infobox\s*(.*?)\}\}`)},
}

// paramPattern scans "| key = value" pairs inside a template body. The value
// class excludes pipes and braces, so each value naturally ends at the next
// parameter; nested templates and piped links inside values are truncated
// rather than parsed.
var paramPattern = regexp.MustCompile(`\|\s*(\w+)\s*=\s*([^|{}]*)`)

// wikiLinkPattern rewrites [[target|label]] and [[target]] to the display text.
var wikiLinkPattern = regexp.MustCompile(`\[\[([^|\]]+\|)?([^\]]+)\]\]`)

// Extract runs every extractor over one page of raw markup.
func Extract(raw string) Extraction {
	return Extraction{
		Infobox:      ExtractInfobox(raw),
		Sections:     ExtractSections(raw),
		Categories:   ExtractCategories(raw),
		RefinerLines: ExtractRefinerLines(raw),
		CookingLines: ExtractCookingLines(raw),
	}
}

// ExtractInfobox finds the first recognized infobox template and parses its
// parameters. Returns a zero Infobox when no template matches.
func ExtractInfobox(raw string) Infobox {
	for _, tmpl := range infoboxTemplates {
		m := tmpl.pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		fields := make(map[string]string)
		for _, param := range paramPattern.FindAllStringSubmatch(m[1], -1) {
			key := strings.ToLower(param[1])
			value := strings.TrimSpace(param[2])
			value = wikiLinkPattern.ReplaceAllString(value, "$2")
			fields[key] = value
		}
		return Infobox{Kind: tmpl.kind, Fields: fields}
	}
	return Infobox{Fields: map[string]string{}}
}

var (
	categoryPattern  = regexp.MustCompile(`\[\[Category:([^\]|]+)`)
	versionQualifier = regexp.MustCompile(`\s*\([^)]+\)\s*$`)
)

// ExtractCategories collects all [[Category:Name]] tags, trimmed and with
// trailing parenthetical version qualifiers (e.g. "(Abyss)") removed,
// de-duplicated in first-seen order. Falls back to the infobox "category"
// field when a page carries no explicit tags.
func ExtractCategories(raw string) []string {
	var names []string
	for _, m := range categoryPattern.FindAllStringSubmatch(raw, -1) {
		names = append(names, m[1])
	}

	if len(names) == 0 {
		if cat := ExtractInfobox(raw).Get("category"); cat != "" {
			names = append(names, cat)
		}
	}

	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = versionQualifier.ReplaceAllString(strings.TrimSpace(name), "")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	return cleaned
}

// valuePattern pulls the leading number out of an infobox value field,
// tolerating thousands separators and trailing unit text.
var valuePattern = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// ParseValue extracts the numeric worth of an item from its infobox "value"
// field. Returns nil when the field is absent or carries no number.
func ParseValue(ib Infobox) *float64 {
	m := valuePattern.FindString(ib.Get("value"))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
