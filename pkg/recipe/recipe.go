// Package recipe parses the semicolon-delimited recipe lines found inside
// refiner and cooking templates.
//
// Line grammar: every part except the last two is an ingredient of the form
// "Name,Quantity"; the second-to-last part is the output quantity; the last
// part is "Time%Operation" (or a bare time). The page owning the template is
// always the recipe's output, so a parsed line carries no output name.
package recipe

import (
	"strconv"
	"strings"

	"github.com/atlaspath/nmsdex/models"
)

// Ingredient is one (name, quantity) input pair in source order.
type Ingredient struct {
	Name     string
	Quantity int
}

// Line is one decomposed recipe line.
type Line struct {
	Kind        models.RecipeKind
	Ingredients []Ingredient
	OutputQty   int
	TimeSeconds float64
	Operation   string
}

// Parse decomposes one recipe line. Returns false for lines that do not fit
// the grammar; the caller skips those and keeps going.
func Parse(line string, kind models.RecipeKind) (Line, bool) {
	parts := strings.Split(line, ";")
	if len(parts) < 3 {
		// Need at least one ingredient plus output quantity plus time.
		return Line{}, false
	}

	parsed := Line{Kind: kind}

	for _, part := range parts[:len(parts)-2] {
		name, qtyStr, found := strings.Cut(part, ",")
		if !found {
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
		if err != nil || qty < 0 {
			// A malformed quantity drops the ingredient, not the line.
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		parsed.Ingredients = append(parsed.Ingredients, Ingredient{Name: name, Quantity: qty})
	}
	if len(parsed.Ingredients) == 0 {
		return Line{}, false
	}

	qty, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-2]))
	if err != nil || qty < 0 {
		return Line{}, false
	}
	parsed.OutputQty = qty

	parsed.TimeSeconds, parsed.Operation = parseSuffix(parts[len(parts)-1], kind)
	return parsed, true
}

// parseSuffix splits the trailing "Time%Operation" part. An unparseable time
// falls back to the kind's default duration; a missing operation falls back
// to the kind's default label.
func parseSuffix(part string, kind models.RecipeKind) (float64, string) {
	timeStr, op, _ := strings.Cut(part, "%")

	seconds, err := strconv.ParseFloat(strings.TrimSpace(timeStr), 64)
	if err != nil || seconds < 0 {
		seconds = kind.DefaultDuration()
	}

	op = strings.TrimSpace(op)
	if op == "" {
		op = kind.DefaultOperation()
	}
	return seconds, op
}
