package scrape

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/atlaspath/nmsdex/models"
	"github.com/atlaspath/nmsdex/pkg/db"
)

// fakeSource serves canned pages keyed by title.
type fakeSource struct {
	categories map[string][]string
	pages      map[string]string
	rendered   map[string]string
}

func (f *fakeSource) CategoryMembers(_ context.Context, category string) ([]string, error) {
	members, ok := f.categories[category]
	if !ok {
		return nil, errors.New("no such category")
	}
	return members, nil
}

func (f *fakeSource) RawPage(_ context.Context, title string) (string, error) {
	raw, ok := f.pages[title]
	if !ok {
		return "", errors.New("page not found")
	}
	return raw, nil
}

func (f *fakeSource) RenderedText(_ context.Context, title string) (string, error) {
	text, ok := f.rendered[title]
	if !ok {
		return "", errors.New("page not found")
	}
	return text, nil
}

func newTestRunner(t *testing.T, source *fakeSource) (*Runner, *db.Store) {
	t.Helper()
	store, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &Runner{
		Source: source,
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, store
}

const carbonPage = `{{Resource infobox
| name = Carbon
| type = Element
| value = 12.0
}}

==Summary==
'''Carbon''' is a resource.

{{PoC-Refine|Condensed Carbon,1;2;0.3%Burn}}

[[Category:Raw Materials]]
`

const condensedCarbonPage = `{{Resource infobox
| name = Condensed Carbon
| type = Element
}}

==Summary==
A dense form of carbon.

{{PoC-Refine|Carbon,2;1;0.9%Condense Carbon}}
{{PoC-Refine|Unstable Gel,1;Carbon,1;2;1.2%Stabilise}}

[[Category:Raw Materials]]
`

const scannerPage = `{{Technology infobox
| name = Scanner Module
| type = Upgrade Module
}}

==Summary==
Improves the scanner.

[[Category:Technology]]
`

const obsoletePage = `{{Obsolete}}
{{Resource infobox
| name = Old Thing
| type = Element
}}
==Summary==
No longer obtainable.
`

func TestRunFullPipeline(t *testing.T) {
	source := &fakeSource{
		categories: map[string][]string{
			"Resources":  {"Carbon", "Condensed Carbon", "Old Thing"},
			"Technology": {"Scanner Module", "Carbon"}, // duplicate title
		},
		pages: map[string]string{
			"Carbon":           carbonPage,
			"Condensed Carbon": condensedCarbonPage,
			"Scanner Module":   scannerPage,
			"Old Thing":        obsoletePage,
		},
	}
	runner, store := newTestRunner(t, source)

	if err := runner.Run(context.Background(), []string{"Resources", "Technology"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Items landed in their groups; "Old Thing" was skipped, and the
	// duplicate "Carbon" listing was processed once.
	groups, err := store.GroupCounts()
	if err != nil {
		t.Fatalf("GroupCounts: %v", err)
	}
	if groups[models.GroupRawMaterials] != 2 {
		t.Errorf("raw materials = %d, want 2", groups[models.GroupRawMaterials])
	}
	if groups[models.GroupTechnology] != 1 {
		t.Errorf("technology = %d, want 1", groups[models.GroupTechnology])
	}

	carbonID, ok, err := store.ItemIDByTitle("Carbon")
	if err != nil || !ok {
		t.Fatalf("ItemIDByTitle(Carbon): ok=%v err=%v", ok, err)
	}
	condensedID, ok, err := store.ItemIDByTitle("Condensed Carbon")
	if err != nil || !ok {
		t.Fatalf("ItemIDByTitle(Condensed Carbon): ok=%v err=%v", ok, err)
	}

	items, err := store.ItemsByGroup(models.GroupRawMaterials)
	if err != nil {
		t.Fatalf("ItemsByGroup: %v", err)
	}
	for _, it := range items {
		if it.Title == "Carbon" {
			if it.Type != "Element" {
				t.Errorf("Carbon type = %q", it.Type)
			}
			if it.Value == nil || *it.Value != 12.0 {
				t.Errorf("Carbon value = %v", it.Value)
			}
			if it.Summary == "" {
				t.Error("Carbon summary missing")
			}
		}
	}

	// Recipes were written in phase 2 with ingredients resolved to item ids.
	recipes, err := store.RecipesByKind(models.RecipeRefiner)
	if err != nil {
		t.Fatalf("RecipesByKind: %v", err)
	}
	if len(recipes) != 3 {
		t.Fatalf("got %d refiner recipes, want 3", len(recipes))
	}

	byOutput := make(map[string][]models.Recipe)
	for _, rec := range recipes {
		byOutput[rec.Output.ID] = append(byOutput[rec.Output.ID], rec)
	}

	carbonRecipes := byOutput[carbonID]
	if len(carbonRecipes) != 1 {
		t.Fatalf("carbon recipes = %d, want 1", len(carbonRecipes))
	}
	if carbonRecipes[0].Inputs[0].ID != condensedID {
		t.Errorf("ingredient id = %q, want %q", carbonRecipes[0].Inputs[0].ID, condensedID)
	}
	if carbonRecipes[0].Operation != "Burn" || carbonRecipes[0].Output.Quantity != 2 {
		t.Errorf("recipe = %+v", carbonRecipes[0])
	}

	condensedRecipes := byOutput[condensedID]
	if len(condensedRecipes) != 2 {
		t.Fatalf("condensed carbon recipes = %d, want 2", len(condensedRecipes))
	}
	// The second line has two ingredients; "Unstable Gel" has no page, so it
	// resolves to a placeholder id.
	for _, rec := range condensedRecipes {
		if len(rec.Inputs) == 2 {
			if rec.Inputs[0].ID != "missing_unstable_gel" {
				t.Errorf("placeholder id = %q", rec.Inputs[0].ID)
			}
			if rec.Inputs[1].ID != carbonID {
				t.Errorf("second ingredient id = %q, want %q", rec.Inputs[1].ID, carbonID)
			}
		}
	}
}

func TestRunIDsStableAcrossRuns(t *testing.T) {
	source := &fakeSource{
		categories: map[string][]string{"Resources": {"Carbon"}},
		pages:      map[string]string{"Carbon": carbonPage},
	}
	runner, store := newTestRunner(t, source)

	if err := runner.Run(context.Background(), []string{"Resources"}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstID, ok, err := store.ItemIDByTitle("Carbon")
	if err != nil || !ok {
		t.Fatalf("ItemIDByTitle: ok=%v err=%v", ok, err)
	}

	second := &Runner{Source: source, Store: store, Logger: runner.Logger}
	if err := second.Run(context.Background(), []string{"Resources"}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	secondID, ok, err := store.ItemIDByTitle("Carbon")
	if err != nil || !ok {
		t.Fatalf("ItemIDByTitle: ok=%v err=%v", ok, err)
	}
	if secondID != firstID {
		t.Errorf("id changed across runs: %q then %q", firstID, secondID)
	}

	groups, err := store.GroupCounts()
	if err != nil {
		t.Fatalf("GroupCounts: %v", err)
	}
	if groups[models.GroupRawMaterials] != 1 {
		t.Errorf("re-run duplicated the item: %v", groups)
	}
}

func TestRunLimit(t *testing.T) {
	source := &fakeSource{
		categories: map[string][]string{
			"Resources": {"Carbon", "Condensed Carbon", "Scanner Module"},
		},
		pages: map[string]string{
			"Carbon":           carbonPage,
			"Condensed Carbon": condensedCarbonPage,
			"Scanner Module":   scannerPage,
		},
	}
	runner, store := newTestRunner(t, source)
	runner.Limit = 1

	if err := runner.Run(context.Background(), []string{"Resources"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	groups, err := store.GroupCounts()
	if err != nil {
		t.Fatalf("GroupCounts: %v", err)
	}
	total := 0
	for _, n := range groups {
		total += n
	}
	if total != 1 {
		t.Errorf("processed %d items, want 1", total)
	}
}

func TestRunRenderedFallback(t *testing.T) {
	source := &fakeSource{
		categories: map[string][]string{"Resources": {"Ghost Page"}},
		pages:      map[string]string{}, // raw fetch fails
		rendered: map[string]string{
			"Ghost Page": "A strange element found in deep caves.",
		},
	}
	runner, store := newTestRunner(t, source)

	if err := runner.Run(context.Background(), []string{"Resources"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	_, ok, err := store.ItemIDByTitle("Ghost Page")
	if err != nil {
		t.Fatalf("ItemIDByTitle: %v", err)
	}
	if !ok {
		t.Error("fallback item was not persisted")
	}
}

func TestRunUnknownCategoryIsNotFatal(t *testing.T) {
	source := &fakeSource{
		categories: map[string][]string{"Resources": {"Carbon"}},
		pages:      map[string]string{"Carbon": carbonPage},
	}
	runner, store := newTestRunner(t, source)

	if err := runner.Run(context.Background(), []string{"Nope", "Resources"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok, _ := store.ItemIDByTitle("Carbon"); !ok {
		t.Error("good category was not processed after bad one")
	}
}
