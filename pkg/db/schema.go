package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Items table: one row per scraped wiki page
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT,
    game_description TEXT,
    source_info TEXT,
    use_info TEXT,
    release_history TEXT,
    additional_info TEXT,
    fishing_info TEXT,
    progression_info TEXT,
    type TEXT,
    group_name TEXT,
    value REAL,
    infobox TEXT,            -- JSON object, lower-cased keys
    categories TEXT,         -- JSON array, first-seen order
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_title ON items(title);
CREATE INDEX IF NOT EXISTS idx_items_group ON items(group_name);
CREATE INDEX IF NOT EXISTS idx_items_type ON items(type);

-- Refiner recipes: one row per parsed refiner template line.
-- output_item_id and ingredient_item_id may hold missing_* placeholders;
-- referential integrity is deliberately loose.
CREATE TABLE IF NOT EXISTS refiner_recipes (
    recipe_id TEXT PRIMARY KEY,
    source_item_id TEXT NOT NULL,
    output_item_id TEXT NOT NULL,
    output_qty INTEGER NOT NULL DEFAULT 1,
    time_seconds REAL NOT NULL,
    operation TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS refiner_ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    ingredient_item_id TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    FOREIGN KEY (recipe_id) REFERENCES refiner_recipes(recipe_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_refiner_output ON refiner_recipes(output_item_id);
CREATE INDEX IF NOT EXISTS idx_refiner_ingredient ON refiner_ingredients(ingredient_item_id);
CREATE INDEX IF NOT EXISTS idx_refiner_ingredient_recipe ON refiner_ingredients(recipe_id);

-- Cooking recipes: same shape as refiner recipes, separate table family
CREATE TABLE IF NOT EXISTS cooking_recipes (
    recipe_id TEXT PRIMARY KEY,
    source_item_id TEXT NOT NULL,
    output_item_id TEXT NOT NULL,
    output_qty INTEGER NOT NULL DEFAULT 1,
    time_seconds REAL NOT NULL,
    operation TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cooking_ingredients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    recipe_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    ingredient_item_id TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    FOREIGN KEY (recipe_id) REFERENCES cooking_recipes(recipe_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cooking_output ON cooking_recipes(output_item_id);
CREATE INDEX IF NOT EXISTS idx_cooking_ingredient ON cooking_ingredients(ingredient_item_id);
CREATE INDEX IF NOT EXISTS idx_cooking_ingredient_recipe ON cooking_ingredients(recipe_id);
`

// recipeTables maps a recipe kind to its table pair. Table names are compile
// time constants, never interpolated from input.
func recipeTables(cooking bool) (recipes, ingredients string) {
	if cooking {
		return "cooking_recipes", "cooking_ingredients"
	}
	return "refiner_recipes", "refiner_ingredients"
}
