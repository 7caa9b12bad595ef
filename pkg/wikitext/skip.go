package wikitext

import "strings"

// skipTitles are pages that survive the category filters but are index,
// catalogue or umbrella pages rather than items.
var skipTitles = map[string]bool{
	"Travel":                true,
	"Artifact":              true,
	"Multi-Tool":            true,
	"Stamina technology":    true,
	"Protection technology": true,
	"Scan technology":       true,
	"Projectile technology": true,
	"Laser technology":      true,
	"Artifact Research":     true,
	"Artifact Database":     true,
	"Ferrite":               true,
}

// skipCategories exclude whole page families the pipeline does not model.
var skipCategories = []string{
	"Category:NPC",
	"Category:Flora",
	"Category:Fauna",
	"Category:Minerals",
	"Category:Album",
	"Category:Mechanics",
	"Category:Multi-Tool",
	"Category:Cuboid Room",
	"Category:Container",
}

// skipPhrases are free-text markers for catalogue, guide and umbrella pages.
var skipPhrases = []struct {
	marker string
	reason string
}{
	{"is a visual catalogue", "visual catalogue"},
	{"is a visual catalog", "visual catalog"},
	{"index page", "index page"},
	{"visual guide page", "guide page"},
	{"{{Flora infobox", "flora infobox"},
	{"{{Fauna infobox", "fauna infobox"},
	{"{{Creature infobox", "creature infobox"},
	{"{{Mineral infobox", "location-specific mineral"},
	{"{{disambig}}", "disambiguation"},
	{"one of the major methods", "farming guide"},
	{"is a container", "container"},
	{"are single use", "single use"},
	{"are a type of", "type listing"},
	{"are the primary materials for", "resource division"},
	{"are one of the major materials used to", "resource division"},
}

// ShouldSkip decides whether a fetched page is an item page worth extracting.
// Returns the human-readable reason when the page should be dropped.
func ShouldSkip(title, raw string) (string, bool) {
	if skipTitles[title] {
		return "listed title", true
	}

	if strings.Contains(raw, "{{Obsolete}}") || strings.Contains(raw, "{{obsolete}}") ||
		strings.Contains(raw, "{{Version|Pre-release}}") ||
		strings.Contains(raw, "{{version|pre-release}}") ||
		strings.Contains(raw, "release = Pre-release") {
		return "obsolete or pre-release", true
	}

	for _, cat := range skipCategories {
		// Both [[Category:Name]] and [[Category:Name|sortkey]] forms appear.
		if strings.Contains(raw, "[["+cat+"]]") || strings.Contains(raw, "[["+cat+"|") {
			return cat, true
		}
	}

	// Artifact listing and disambiguation pages carry the Artifact category
	// but are not items themselves.
	if (strings.Contains(raw, "[[Category:Artifact]]") || strings.Contains(raw, "[[Category:Artifact|")) &&
		(strings.Contains(raw, "==List of") || strings.Contains(raw, "{{disambig}}")) {
		return "artifact listing", true
	}

	for _, p := range skipPhrases {
		if strings.Contains(raw, p.marker) {
			return p.reason, true
		}
	}

	if strings.Contains(raw, "are one of the") && strings.Contains(raw, "divisions of the") {
		return "resource division", true
	}

	return "", false
}
