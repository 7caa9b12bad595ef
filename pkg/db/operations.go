package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atlaspath/nmsdex/models"
)

// UpsertItem writes an item row, fully replacing any prior row with the same
// id. No partial merges.
func (s *Store) UpsertItem(item models.Item) error {
	infoboxJSON, err := json.Marshal(nonNilMap(item.Infobox))
	if err != nil {
		return fmt.Errorf("failed to encode infobox for %s: %w", item.Title, err)
	}
	categoriesJSON, err := json.Marshal(nonNilSlice(item.Categories))
	if err != nil {
		return fmt.Errorf("failed to encode categories for %s: %w", item.Title, err)
	}

	_, err = s.Exec(`
		REPLACE INTO items (
			id, title, summary, game_description, source_info, use_info,
			release_history, additional_info, fishing_info, progression_info,
			type, group_name, value, infobox, categories, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`,
		item.ID, item.Title,
		nullable(item.Summary), nullable(item.GameDescription),
		nullable(item.SourceInfo), nullable(item.UseInfo),
		nullable(item.ReleaseHistory), nullable(item.AdditionalInfo),
		nullable(item.FishingInfo), nullable(item.ProgressionInfo),
		item.Type, string(item.Group), item.Value,
		string(infoboxJSON), string(categoriesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.Title, err)
	}
	return nil
}

// ItemIDByTitle returns the stored id for an exact title, if any. Re-scrapes
// use this to keep ids stable across runs.
func (s *Store) ItemIDByTitle(title string) (string, bool, error) {
	var id string
	err := s.QueryRow("SELECT id FROM items WHERE title = ?", title).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up title %q: %w", title, err)
	}
	return id, true, nil
}

// UpsertRecipe writes a recipe row plus its ingredient rows, replacing both
// wholesale when the recipe id already exists. Placeholder (missing_*) item
// references are stored as-is.
func (s *Store) UpsertRecipe(kind models.RecipeKind, sourceItemID string, r models.Recipe) error {
	recipesTable, ingredientsTable := recipeTables(kind == models.RecipeCooking)

	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin recipe write: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		REPLACE INTO `+recipesTable+` (
			recipe_id, source_item_id, output_item_id, output_qty, time_seconds, operation
		) VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, sourceItemID, r.Output.ID, r.Output.Quantity, r.TimeSeconds, r.Operation)
	if err != nil {
		return fmt.Errorf("failed to upsert recipe %s: %w", r.ID, err)
	}

	if _, err := tx.Exec(`DELETE FROM `+ingredientsTable+` WHERE recipe_id = ?`, r.ID); err != nil {
		return fmt.Errorf("failed to clear ingredients for %s: %w", r.ID, err)
	}

	for i, in := range r.Inputs {
		_, err := tx.Exec(`
			INSERT INTO `+ingredientsTable+` (recipe_id, position, ingredient_item_id, quantity)
			VALUES (?, ?, ?, ?)
		`, r.ID, i, in.ID, in.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient %d of %s: %w", i, r.ID, err)
		}
	}

	return tx.Commit()
}

// ItemsByGroup returns all items of one group ordered by title.
func (s *Store) ItemsByGroup(group models.Group) ([]models.Item, error) {
	rows, err := s.Query(`
		SELECT id, title, summary, game_description, source_info, use_info,
		       release_history, additional_info, fishing_info, progression_info,
		       type, group_name, value, infobox, categories
		FROM items WHERE group_name = ?
		ORDER BY title
	`, string(group))
	if err != nil {
		return nil, fmt.Errorf("failed to query items for %s: %w", group, err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(rows *sql.Rows) (models.Item, error) {
	var (
		item        models.Item
		sections    [8]sql.NullString
		groupName   string
		value       sql.NullFloat64
		infoboxJSON string
		catsJSON    string
	)
	err := rows.Scan(
		&item.ID, &item.Title,
		&sections[0], &sections[1], &sections[2], &sections[3],
		&sections[4], &sections[5], &sections[6], &sections[7],
		&item.Type, &groupName, &value, &infoboxJSON, &catsJSON,
	)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to scan item: %w", err)
	}

	item.Summary = sections[0].String
	item.GameDescription = sections[1].String
	item.SourceInfo = sections[2].String
	item.UseInfo = sections[3].String
	item.ReleaseHistory = sections[4].String
	item.AdditionalInfo = sections[5].String
	item.FishingInfo = sections[6].String
	item.ProgressionInfo = sections[7].String
	item.Group = models.Group(groupName)
	if value.Valid {
		v := value.Float64
		item.Value = &v
	}

	if err := json.Unmarshal([]byte(infoboxJSON), &item.Infobox); err != nil {
		item.Infobox = map[string]string{}
	}
	if err := json.Unmarshal([]byte(catsJSON), &item.Categories); err != nil {
		item.Categories = []string{}
	}
	return item, nil
}

// RecipesByKind returns all recipes of one kind ordered by recipe id, with
// component names resolved against the items table. Unresolvable references
// keep their id as the display name.
func (s *Store) RecipesByKind(kind models.RecipeKind) ([]models.Recipe, error) {
	recipesTable, ingredientsTable := recipeTables(kind == models.RecipeCooking)

	rows, err := s.Query(`
		SELECT r.recipe_id, r.output_item_id, i.title, r.output_qty, r.time_seconds, r.operation
		FROM ` + recipesTable + ` r
		LEFT JOIN items i ON r.output_item_id = i.id
		ORDER BY r.recipe_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s recipes: %w", kind, err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		var (
			r          models.Recipe
			outputName sql.NullString
		)
		err := rows.Scan(&r.ID, &r.Output.ID, &outputName, &r.Output.Quantity, &r.TimeSeconds, &r.Operation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		r.Output.Name = fallbackName(outputName, r.Output.ID)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		inputs, err := s.recipeInputs(ingredientsTable, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Inputs = inputs
	}
	return recipes, nil
}

func (s *Store) recipeInputs(ingredientsTable, recipeID string) ([]models.RecipeComponent, error) {
	rows, err := s.Query(`
		SELECT g.ingredient_item_id, i.title, g.quantity
		FROM `+ingredientsTable+` g
		LEFT JOIN items i ON g.ingredient_item_id = i.id
		WHERE g.recipe_id = ?
		ORDER BY g.position
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients for %s: %w", recipeID, err)
	}
	defer rows.Close()

	inputs := []models.RecipeComponent{}
	for rows.Next() {
		var (
			c    models.RecipeComponent
			name sql.NullString
		)
		if err := rows.Scan(&c.ID, &name, &c.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		c.Name = fallbackName(name, c.ID)
		inputs = append(inputs, c)
	}
	return inputs, rows.Err()
}

// TitleIndex returns the title→id mapping for every stored item.
func (s *Store) TitleIndex() (map[string]string, error) {
	rows, err := s.Query("SELECT title, id FROM items")
	if err != nil {
		return nil, fmt.Errorf("failed to query title index: %w", err)
	}
	defer rows.Close()

	index := make(map[string]string)
	for rows.Next() {
		var title, id string
		if err := rows.Scan(&title, &id); err != nil {
			return nil, err
		}
		index[title] = id
	}
	return index, rows.Err()
}

// GroupCounts returns the number of stored items per group.
func (s *Store) GroupCounts() (map[models.Group]int, error) {
	rows, err := s.Query("SELECT group_name, COUNT(*) FROM items GROUP BY group_name")
	if err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Group]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[models.Group(name)] = n
	}
	return counts, rows.Err()
}

// RecipeCounts returns the number of stored recipes per kind.
func (s *Store) RecipeCounts() (map[models.RecipeKind]int, error) {
	counts := make(map[models.RecipeKind]int)
	for _, kind := range []models.RecipeKind{models.RecipeRefiner, models.RecipeCooking} {
		recipesTable, _ := recipeTables(kind == models.RecipeCooking)
		var n int
		if err := s.QueryRow("SELECT COUNT(*) FROM " + recipesTable).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s recipes: %w", kind, err)
		}
		counts[kind] = n
	}
	return counts, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fallbackName(name sql.NullString, id string) string {
	if name.Valid && name.String != "" {
		return name.String
	}
	return id
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
