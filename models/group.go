package models

// Group is one of the fixed content buckets an item can be classified into.
type Group string

const (
	GroupRawMaterials      Group = "rawMaterials"
	GroupFish              Group = "fish"
	GroupCooking           Group = "cooking"
	GroupNutrientProcessor Group = "nutrientProcessor"
	GroupProducts          Group = "products"
	GroupTrade             Group = "trade"
	GroupBuildings         Group = "buildings"
	GroupTechnology        Group = "technology"
	GroupCuriosities       Group = "curiosities"
	GroupOthers            Group = "others"
)

// AllGroups lists every item group in stable export order.
var AllGroups = []Group{
	GroupBuildings,
	GroupCooking,
	GroupCuriosities,
	GroupFish,
	GroupNutrientProcessor,
	GroupOthers,
	GroupProducts,
	GroupRawMaterials,
	GroupTechnology,
	GroupTrade,
}

// groupPrefixes maps each group to its sequential-id prefix (e.g. "raw12").
var groupPrefixes = map[Group]string{
	GroupBuildings:         "build",
	GroupCooking:           "cook",
	GroupCuriosities:       "cur",
	GroupFish:              "fish",
	GroupNutrientProcessor: "nut",
	GroupOthers:            "other",
	GroupProducts:          "prod",
	GroupRawMaterials:      "raw",
	GroupTechnology:        "tech",
	GroupTrade:             "trade",
}

// groupFiles maps each group to its export file name.
var groupFiles = map[Group]string{
	GroupBuildings:         "Buildings.json",
	GroupCooking:           "Cooking.json",
	GroupCuriosities:       "Curiosities.json",
	GroupFish:              "Fish.json",
	GroupNutrientProcessor: "NutrientProcessor.json",
	GroupOthers:            "Others.json",
	GroupProducts:          "Products.json",
	GroupRawMaterials:      "RawMaterials.json",
	GroupTechnology:        "Technology.json",
	GroupTrade:             "Trade.json",
}

// Prefix returns the id prefix for the group ("item" for unknown groups).
func (g Group) Prefix() string {
	if p, ok := groupPrefixes[g]; ok {
		return p
	}
	return "item"
}

// ExportFile returns the JSON file name items of this group export to.
func (g Group) ExportFile() string {
	return groupFiles[g]
}

// Valid reports whether g is one of the known groups.
func (g Group) Valid() bool {
	_, ok := groupPrefixes[g]
	return ok
}
