// Package classify routes an extracted item into one of the fixed content
// groups. The classifier is a deterministic, order-sensitive cascade: rules
// run top-down and the first one whose predicate holds wins. The order is
// load-bearing because many predicates overlap (most technology items would
// also match "module" or building keywords), so it is kept as an explicit
// slice rather than scattered conditionals.
package classify

import (
	"strings"

	"github.com/atlaspath/nmsdex/models"
)

// Input is the lower-cased view of one item's extracted fields.
type Input struct {
	Type        string   // infobox "type"
	Category    string   // infobox "category"
	UsedFor     string   // infobox "used"
	Description string   // game description or summary
	Title       string
	Categories  []string // wiki category tags
}

// NewInput builds a classifier input from raw extracted fields, folding
// everything to lower case once up front.
func NewInput(ib map[string]string, description, title string, categories []string) Input {
	in := Input{
		Type:        strings.ToLower(ib["type"]),
		Category:    strings.ToLower(ib["category"]),
		UsedFor:     strings.ToLower(ib["used"]),
		Description: strings.ToLower(description),
		Title:       strings.ToLower(title),
	}
	in.Categories = make([]string, len(categories))
	for i, c := range categories {
		in.Categories[i] = strings.ToLower(c)
	}
	return in
}

type rule struct {
	group models.Group
	match func(Input) bool
}

// rules is the canonical cascade. Reordering entries changes classifications.
var rules = []rule{
	{models.GroupRawMaterials, isRawMaterial},
	{models.GroupFish, isFish},
	{models.GroupCooking, isCooking},
	{models.GroupNutrientProcessor, isNutrientProcessor},
	{models.GroupProducts, isProduct},
	{models.GroupTrade, isTrade},
	{models.GroupBuildings, isBuilding},
	{models.GroupTechnology, isTechnology},
	{models.GroupCuriosities, isCuriosity},
}

// Classify assigns exactly one group. Pure function of its input: same tuple,
// same label.
func Classify(in Input) models.Group {
	for _, r := range rules {
		if r.match(in) {
			return r.group
		}
	}
	return models.GroupOthers
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func anyTagEquals(tags []string, keywords ...string) bool {
	for _, t := range tags {
		for _, k := range keywords {
			if t == k {
				return true
			}
		}
	}
	return false
}

func anyTagContains(tags []string, keyword string) bool {
	for _, t := range tags {
		if strings.Contains(t, keyword) {
			return true
		}
	}
	return false
}

func isRawMaterial(in Input) bool {
	return containsAny(in.Type, "element", "mineral", "substance", "fuel", "catalyst", "gas") ||
		anyTagEquals(in.Categories, "raw materials", "fuel elements", "special elements", "earth elements") ||
		containsAny(in.Title, "carbon", "ferrite", "sodium", "oxygen", "cobalt", "cadmium", "emeril", "indium")
}

func isFish(in Input) bool {
	return strings.Contains(in.Type, "fish") ||
		strings.Contains(in.Category, "fish") ||
		anyTagContains(in.Categories, "fish") ||
		strings.Contains(in.Title, "fish")
}

func isCooking(in Input) bool {
	if containsAny(in.Type, "edible", "food", "ingredient", "nutrient", "meal", "drink", "bait") ||
		strings.Contains(in.UsedFor, "cooking") ||
		strings.Contains(in.Category, "edible") {
		return true
	}
	// The description route is weaker evidence and yields to tech signals.
	return containsAny(in.Description, "edible", "food", "meal", "cooking", "nutrient processor", "eat", "consume") &&
		!containsAny(in.Type, "technology", "platform", "component", "module")
}

func isNutrientProcessor(in Input) bool {
	return containsAny(in.Description, "nutrient processor", "cooking station", "food processor") ||
		strings.Contains(in.Title, "nutrient processor")
}

func isProduct(in Input) bool {
	if strings.Contains(in.UsedFor, "upgrading") {
		return false
	}
	return containsAny(in.Category, "product", "consumable", "container", "component") ||
		containsAny(in.Type, "product", "manufactured", "crafted") ||
		strings.Contains(in.UsedFor, "crafting")
}

func isTrade(in Input) bool {
	if isProduct(in) {
		return false
	}
	return containsAny(in.Type, "trade", "commodity", "valuable", "tradeable") ||
		containsAny(in.Category, "trade", "tradeable", "commodity") ||
		anyTagEquals(in.Categories, "trade commodity", "tradeable")
}

func isBuilding(in Input) bool {
	return containsAny(in.Type, "construction", "building", "base", "structure", "decoration", "interior") ||
		containsAny(in.Category, "base building", "construction", "building") ||
		containsAny(in.UsedFor, "building", "construction") ||
		containsAny(in.Description, "base building", "construction", "habitable", "fabricated") ||
		containsAny(in.Title, "corridor", "room", "door", "wall", "floor", "roof", "window")
}

func isTechnology(in Input) bool {
	if strings.Contains(in.Title, "room") {
		return false
	}
	// Modules tagged as construction parts belong to buildings, which already
	// had their chance above.
	if strings.Contains(in.Type, "module") &&
		containsAny(in.Category, "construction", "building") {
		return false
	}
	return containsAny(in.Type, "technology", "platform", "module", "upgrade", "blueprint") ||
		containsAny(in.Category, "technology", "blueprint") ||
		containsAny(in.UsedFor, "upgrading", "technology") ||
		anyTagEquals(in.Categories, "technology", "blueprints", "constructed technology") ||
		containsAny(in.Title, "module", "upgrade", "blueprint", "scanner", "drive", "engine")
}

func isCuriosity(in Input) bool {
	return containsAny(in.Type, "artifact", "curiosity", "relic", "treasure", "sample") ||
		containsAny(in.Category, "curiosity", "artifact") ||
		anyTagEquals(in.Categories, "curiosity", "artifact") ||
		containsAny(in.Title, "artifact", "relic", "treasure", "sample", "fossil")
}
