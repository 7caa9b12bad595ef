package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/atlaspath/nmsdex/models"
	"github.com/atlaspath/nmsdex/pkg/classify"
	"github.com/atlaspath/nmsdex/pkg/db"
	"github.com/atlaspath/nmsdex/pkg/recipe"
	"github.com/atlaspath/nmsdex/pkg/resolve"
	"github.com/atlaspath/nmsdex/pkg/wikitext"
)

// pageSource is the wiki-facing collaborator the pipeline reads from.
type pageSource interface {
	CategoryMembers(ctx context.Context, category string) ([]string, error)
	RawPage(ctx context.Context, title string) (string, error)
	RenderedText(ctx context.Context, title string) (string, error)
}

// pendingRecipes queues the raw recipe lines of one page until every item of
// the batch has been written. Recipes resolve ingredient names against the
// full item set, so they are persisted in a second phase.
type pendingRecipes struct {
	itemID       string
	title        string
	refinerLines []string
	cookingLines []string
}

// Runner drives one scrape: phase 1 fetches, extracts, classifies and
// persists items; phase 2 parses and persists the queued recipe lines.
type Runner struct {
	Source pageSource
	Store  *db.Store
	Logger *slog.Logger
	Limit  int

	pending []pendingRecipes
	stats   runStats
}

type runStats struct {
	pages   int
	skipped int
	failed  int
	items   map[models.Group]int
	recipes map[models.RecipeKind]int
}

// Run executes both phases. A context cancellation stops the loop between
// pages; items already written stay durable.
func (r *Runner) Run(ctx context.Context, categories []string) error {
	titles, err := r.collectTitles(ctx, categories)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	if r.Limit > 0 && len(titles) > r.Limit {
		r.Logger.Info("limiting page count for this run", "limit", r.Limit, "total", len(titles))
		titles = titles[:r.Limit]
	}

	r.stats = runStats{
		items:   make(map[models.Group]int),
		recipes: make(map[models.RecipeKind]int),
	}

	for i, title := range titles {
		if err := ctx.Err(); err != nil {
			r.Logger.Info("scrape interrupted", "processed", i, "total", len(titles))
			break
		}
		r.processPage(ctx, title)

		if (i+1)%10 == 0 {
			fmt.Printf("Progress: %d/%d - %s\n", i+1, len(titles), title)
		}
	}

	if err := r.persistRecipes(); err != nil {
		return err
	}

	r.printSummary()
	return nil
}

// collectTitles enumerates all configured categories, de-duplicating titles
// in first-seen order.
func (r *Runner) collectTitles(ctx context.Context, categories []string) ([]string, error) {
	seen := make(map[string]bool)
	var titles []string

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return titles, err
		}

		members, err := r.Source.CategoryMembers(ctx, category)
		if err != nil {
			// One unreachable category does not abort the batch.
			r.Logger.Error("failed to enumerate category", "category", category, "error", err)
			continue
		}
		r.Logger.Info("enumerated category", "category", category, "pages", len(members))

		for _, title := range members {
			if !seen[title] {
				seen[title] = true
				titles = append(titles, title)
			}
		}
	}

	r.Logger.Info("collected unique pages", "count", len(titles))
	return titles, nil
}

// processPage runs one page through fetch, skip checks, extraction,
// classification and persistence. All failures are page-local.
func (r *Runner) processPage(ctx context.Context, title string) {
	r.stats.pages++

	raw, err := r.Source.RawPage(ctx, title)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		r.Logger.Warn("raw markup unavailable, trying rendered page", "title", title, "error", err)
		r.processRenderedFallback(ctx, title)
		return
	}

	if reason, skip := wikitext.ShouldSkip(title, raw); skip {
		r.Logger.Info("skipping page", "title", title, "reason", reason)
		r.stats.skipped++
		return
	}

	ex := wikitext.Extract(raw)

	description := ex.Sections[wikitext.SectionGameDescription]
	if description == "" {
		description = ex.Sections[wikitext.SectionSummary]
	}

	group := classify.Classify(classify.NewInput(ex.Infobox.Fields, description, title, ex.Categories))
	item := models.Item{
		ID:              r.itemID(title, group),
		Title:           title,
		Summary:         ex.Sections[wikitext.SectionSummary],
		GameDescription: ex.Sections[wikitext.SectionGameDescription],
		SourceInfo:      ex.Sections[wikitext.SectionSourceInfo],
		UseInfo:         ex.Sections[wikitext.SectionUseInfo],
		ReleaseHistory:  ex.Sections[wikitext.SectionReleaseHistory],
		AdditionalInfo:  ex.Sections[wikitext.SectionAdditionalInfo],
		FishingInfo:     ex.Sections[wikitext.SectionFishingInfo],
		ProgressionInfo: ex.Sections[wikitext.SectionProgressionInfo],
		Type:            ex.Infobox.Get("type"),
		Group:           group,
		Value:           wikitext.ParseValue(ex.Infobox),
		Infobox:         ex.Infobox.Fields,
		Categories:      ex.Categories,
	}

	if err := r.Store.UpsertItem(item); err != nil {
		// At most this one record is lost; the run continues.
		r.Logger.Error("failed to persist item", "title", title, "error", err)
		r.stats.failed++
		return
	}
	r.stats.items[group]++

	if len(ex.RefinerLines) > 0 || len(ex.CookingLines) > 0 {
		r.pending = append(r.pending, pendingRecipes{
			itemID:       item.ID,
			title:        title,
			refinerLines: ex.RefinerLines,
			cookingLines: ex.CookingLines,
		})
		r.Logger.Info("collected recipe lines", "title", title,
			"refiner", len(ex.RefinerLines), "cooking", len(ex.CookingLines))
	}
}

// processRenderedFallback persists a minimal item from the rendered page when
// raw markup cannot be fetched, so the title is not silently dropped.
func (r *Runner) processRenderedFallback(ctx context.Context, title string) {
	text, err := r.Source.RenderedText(ctx, title)
	if err != nil || text == "" {
		r.Logger.Error("failed to fetch page", "title", title, "error", err)
		r.stats.failed++
		return
	}

	group := classify.Classify(classify.NewInput(nil, text, title, nil))
	item := models.Item{
		ID:      r.itemID(title, group),
		Title:   title,
		Summary: text,
		Group:   group,
	}

	if err := r.Store.UpsertItem(item); err != nil {
		r.Logger.Error("failed to persist item", "title", title, "error", err)
		r.stats.failed++
		return
	}
	r.stats.items[group]++
}

// itemID reuses the stored id when the title was scraped before, so a
// re-scrape replaces the row instead of forking a new id.
func (r *Runner) itemID(title string, group models.Group) string {
	if id, ok, err := r.Store.ItemIDByTitle(title); err == nil && ok {
		return id
	}
	return r.Store.NextID(group)
}

// persistRecipes is phase 2: all items exist, so ingredient names can resolve
// against the complete title index.
func (r *Runner) persistRecipes() error {
	if len(r.pending) == 0 {
		return nil
	}

	index, err := r.Store.TitleIndex()
	if err != nil {
		return fmt.Errorf("failed to load title index: %w", err)
	}
	resolver := resolve.New(index)

	for _, p := range r.pending {
		r.persistKind(resolver, p, models.RecipeRefiner, p.refinerLines)
		r.persistKind(resolver, p, models.RecipeCooking, p.cookingLines)
	}
	return nil
}

func (r *Runner) persistKind(resolver *resolve.Resolver, p pendingRecipes, kind models.RecipeKind, lines []string) {
	seq := 0
	for _, line := range lines {
		parsed, ok := recipe.Parse(line, kind)
		if !ok {
			// Malformed line: drop it, keep its siblings.
			r.Logger.Warn("discarding malformed recipe line", "title", p.title, "line", line)
			continue
		}
		seq++

		rec := models.Recipe{
			ID: kind.IDPrefix() + "_" + p.itemID + "_" + strconv.Itoa(seq),
			Output: models.RecipeComponent{
				ID:       p.itemID,
				Name:     p.title,
				Quantity: parsed.OutputQty,
			},
			TimeSeconds: parsed.TimeSeconds,
			Operation:   parsed.Operation,
		}
		for _, in := range parsed.Ingredients {
			rec.Inputs = append(rec.Inputs, models.RecipeComponent{
				ID:       resolver.Resolve(in.Name),
				Name:     in.Name,
				Quantity: in.Quantity,
			})
		}

		if err := r.Store.UpsertRecipe(kind, p.itemID, rec); err != nil {
			r.Logger.Error("failed to persist recipe", "recipe", rec.ID, "error", err)
			continue
		}
		r.stats.recipes[kind]++
	}
}

// printSummary emits the human-readable end-of-run report.
func (r *Runner) printSummary() {
	fmt.Println("\nScrape summary")
	fmt.Println("--------------")
	fmt.Printf("pages processed: %d (skipped %d, failed %d)\n",
		r.stats.pages, r.stats.skipped, r.stats.failed)

	total := 0
	for _, group := range models.AllGroups {
		if n := r.stats.items[group]; n > 0 {
			fmt.Printf("%-18s %4d items\n", group, n)
			total += n
		}
	}
	fmt.Printf("%-18s %4d items\n", "TOTAL", total)
	fmt.Printf("%-18s %4d recipes\n", "refiner", r.stats.recipes[models.RecipeRefiner])
	fmt.Printf("%-18s %4d recipes\n", "cooking", r.stats.recipes[models.RecipeCooking])
}
