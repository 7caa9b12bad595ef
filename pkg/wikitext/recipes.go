package wikitext

import (
	"regexp"
	"strings"
)

// Recipe template families. PoC-Refine is the live refiner template; the
// older bare Refine name still appears on stale pages and parses the same
// way. Cook covers nutrient processor recipes.
var (
	refinerTemplates = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\{\{PoC-Refine\s*\|([^}]+)\}\}`),
		regexp.MustCompile(`(?is)\{\{Refine\s*\|([^}]+)\}\}`),
	}
	cookingTemplates = []*regexp.Regexp{
		regexp.MustCompile(`(?is)\{\{Cook\s*\|([^}]+)\}\}`),
	}
)

// ExtractRefinerLines returns the raw unparsed recipe lines of every refiner
// template on the page.
func ExtractRefinerLines(raw string) []string {
	return templateLines(raw, refinerTemplates)
}

// ExtractCookingLines returns the raw unparsed recipe lines of every cooking
// template on the page.
func ExtractCookingLines(raw string) []string {
	return templateLines(raw, cookingTemplates)
}

// templateLines splits matched template bodies on | and trims the pieces.
// Named template parameters (key=value) are not recipe lines and are dropped.
func templateLines(raw string, templates []*regexp.Regexp) []string {
	var lines []string
	for _, tmpl := range templates {
		for _, m := range tmpl.FindAllStringSubmatch(raw, -1) {
			for _, line := range strings.Split(m[1], "|") {
				line = strings.TrimSpace(line)
				if line == "" || strings.Contains(line, "=") {
					continue
				}
				lines = append(lines, line)
			}
		}
	}
	return lines
}
