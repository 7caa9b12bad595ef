package wikitext

import (
	"regexp"
	"strings"
)

// Canonical section names. These double as column names in the items table
// and as keys in the export records.
const (
	SectionSummary         = "summary"
	SectionGameDescription = "game_description"
	SectionSourceInfo      = "source_info"
	SectionUseInfo         = "use_info"
	SectionReleaseHistory  = "release_history"
	SectionAdditionalInfo  = "additional_info"
	SectionFishingInfo     = "fishing_info"
	SectionProgressionInfo = "progression_info"
)

// sectionDefs maps each canonical section to the header texts that introduce
// it on the wiki. Order inside a synonym list is the probe order; the first
// header that matches wins.
var sectionDefs = []struct {
	name     string
	patterns []*regexp.Regexp
}{
	{SectionSummary, headerPatterns("Summary")},
	{SectionGameDescription, headerPatterns("Game description", "In-game description")},
	{SectionSourceInfo, headerPatterns("Source", "How to acquire", "Sources")},
	{SectionUseInfo, headerPatterns("Use", "Usage", "Uses")},
	{SectionReleaseHistory, headerPatterns("Release history")},
	{SectionAdditionalInfo, headerPatterns("Additional information", "Additional notes")},
	{SectionFishingInfo, headerPatterns("Fishing Bait", "Fishing bait")},
	{SectionProgressionInfo, headerPatterns("Resource progression", "Progression")},
}

// headerPatterns compiles one pattern per synonym. Capture runs from the
// closing == of the header to the next == header or template opening,
// whichever comes first.
func headerPatterns(headers ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(headers))
	for i, h := range headers {
		patterns[i] = regexp.MustCompile(
			`(?is)==\s*` + regexp.QuoteMeta(h) + `\s*==\s*(.*?)\s*(?:==|\{\{|\z)`)
	}
	return patterns
}

// ExtractSections captures the prose of every known section. Absent sections
// are simply missing from the map.
func ExtractSections(raw string) map[string]string {
	sections := make(map[string]string)
	for _, def := range sectionDefs {
		for _, pattern := range def.patterns {
			m := pattern.FindStringSubmatch(raw)
			if m == nil {
				continue
			}
			if text := CleanMarkup(m[1]); text != "" {
				sections[def.name] = text
			}
			break
		}
	}
	return sections
}

var (
	boldPattern      = regexp.MustCompile(`'''([^']+)'''`)
	italicPattern    = regexp.MustCompile(`''([^']+)''`)
	blankRunsPattern = regexp.MustCompile(`\n\s*\n`)
)

// CleanMarkup strips common wiki markup from prose: links reduce to their
// display text, bold/italic quote runs drop, and blank-line runs collapse to
// exactly one blank line.
func CleanMarkup(text string) string {
	text = wikiLinkPattern.ReplaceAllString(text, "$2")
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = blankRunsPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
