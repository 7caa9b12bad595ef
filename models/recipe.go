package models

import "strings"

// RecipeKind distinguishes the two recipe table families.
type RecipeKind string

const (
	RecipeRefiner RecipeKind = "refiner"
	RecipeCooking RecipeKind = "cooking"
)

// IDPrefix returns the recipe-id prefix for the kind ("ref_..." / "cook_...").
func (k RecipeKind) IDPrefix() string {
	if k == RecipeCooking {
		return "cook"
	}
	return "ref"
}

// ExportFile returns the JSON file recipes of this kind export to.
func (k RecipeKind) ExportFile() string {
	if k == RecipeCooking {
		return "NutrientProcessor.json"
	}
	return "Refinery.json"
}

// DefaultDuration is the fallback processing time in seconds when a recipe
// line carries an unparseable time field. The two template families use
// different defaults and both must be preserved.
func (k RecipeKind) DefaultDuration() float64 {
	if k == RecipeCooking {
		return 2.5
	}
	return 1.0
}

// DefaultOperation labels a recipe line that has no operation suffix.
func (k RecipeKind) DefaultOperation() string {
	if k == RecipeCooking {
		return "Cooking"
	}
	return "Refining"
}

// RecipeComponent is one (item, quantity) pair on either side of a recipe.
type RecipeComponent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Missing reports whether the component references an unresolved placeholder.
func (c RecipeComponent) Missing() bool {
	return strings.HasPrefix(c.ID, "missing_")
}

// Recipe is one extracted refining or cooking operation. Inputs keep their
// source order; an unresolved reference keeps its missing_* id rather than
// being dropped.
type Recipe struct {
	ID          string            `json:"id"`
	Inputs      []RecipeComponent `json:"inputs"`
	Output      RecipeComponent   `json:"output"`
	TimeSeconds float64           `json:"time_seconds"`
	Operation   string            `json:"operation"`
}
