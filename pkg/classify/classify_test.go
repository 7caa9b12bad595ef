package classify

import (
	"testing"

	"github.com/atlaspath/nmsdex/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want models.Group
	}{
		{
			name: "element type is a raw material",
			in:   NewInput(map[string]string{"type": "Element"}, "", "Carbon", nil),
			want: models.GroupRawMaterials,
		},
		{
			name: "raw materials tag",
			in:   NewInput(nil, "", "Pyrite", []string{"Raw Materials"}),
			want: models.GroupRawMaterials,
		},
		{
			name: "fish by type",
			in:   NewInput(map[string]string{"type": "Fish"}, "", "Gravity Eel", nil),
			want: models.GroupFish,
		},
		{
			name: "edible ingredient",
			in:   NewInput(map[string]string{"type": "Edible Product"}, "", "Proto-Bread", nil),
			want: models.GroupCooking,
		},
		{
			name: "cooking by description",
			in:   NewInput(nil, "A rich food source, eat when processed.", "Heptaploid Wheat", nil),
			want: models.GroupCooking,
		},
		{
			name: "description food words yield to tech type",
			in:   NewInput(map[string]string{"type": "Technology"}, "Consume less fuel with this upgrade.", "Launch Auto-Charger", nil),
			want: models.GroupTechnology,
		},
		{
			name: "nutrient processor station",
			in:   NewInput(map[string]string{"type": "Platform"}, "A portable cooking station for the wilds.", "Nutrient Processor", nil),
			want: models.GroupNutrientProcessor,
		},
		{
			name: "crafted product",
			in:   NewInput(map[string]string{"type": "Crafted Product", "category": "Component"}, "", "Metal Plating", nil),
			want: models.GroupProducts,
		},
		{
			name: "trade commodity",
			in:   NewInput(map[string]string{"type": "Trade Commodity"}, "", "Decrypted User Data", []string{"Trade Commodity"}),
			want: models.GroupTrade,
		},
		{
			name: "base building part",
			in:   NewInput(map[string]string{"category": "Base Building"}, "", "Wooden Wall", nil),
			want: models.GroupBuildings,
		},
		{
			name: "upgrade module",
			in:   NewInput(map[string]string{"type": "Upgrade Module", "used": "Upgrading Hyperdrive"}, "", "Hyperdrive Upgrade", nil),
			want: models.GroupTechnology,
		},
		{
			name: "artifact curiosity",
			in:   NewInput(map[string]string{"type": "Artifact"}, "", "Ancient Skeleton", nil),
			want: models.GroupCuriosities,
		},
		{
			name: "nothing matches",
			in:   NewInput(nil, "An unremarkable object.", "Mystery Box", nil),
			want: models.GroupOthers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.in); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Items matching several predicates must land in the earliest group of the
// cascade, and repeated calls must agree.
func TestClassifyCascadeOrder(t *testing.T) {
	// "Salty Fish Fingers" matches both the fish and cooking predicates;
	// fish runs first.
	in := NewInput(map[string]string{"type": "Edible Product"}, "", "Salty Fish Fingers", nil)
	if got := Classify(in); got != models.GroupFish {
		t.Errorf("Classify() = %q, want %q", got, models.GroupFish)
	}

	// A fuel element that is also a trade commodity stays a raw material.
	in = NewInput(map[string]string{"type": "Fuel Element"}, "", "Radon", []string{"Trade Commodity"})
	if got := Classify(in); got != models.GroupRawMaterials {
		t.Errorf("Classify() = %q, want %q", got, models.GroupRawMaterials)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	in := NewInput(map[string]string{"type": "Module", "category": "Technology"}, "", "Scanner Module", []string{"Technology"})
	first := Classify(in)
	for i := 0; i < 5; i++ {
		if got := Classify(in); got != first {
			t.Fatalf("run %d: Classify() = %q, earlier run gave %q", i, got, first)
		}
	}
}

func TestNewInputFoldsCase(t *testing.T) {
	in := NewInput(map[string]string{"type": "ELEMENT"}, "EDIBLE", "CARBON", []string{"RAW MATERIALS"})
	if in.Type != "element" || in.Description != "edible" || in.Title != "carbon" {
		t.Errorf("fields not lower-cased: %+v", in)
	}
	if len(in.Categories) != 1 || in.Categories[0] != "raw materials" {
		t.Errorf("categories not lower-cased: %v", in.Categories)
	}
}
