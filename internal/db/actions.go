// Package db wires the store's inspection and maintenance verbs to the CLI.
package db

import (
	"fmt"
	"strings"

	"github.com/atlaspath/nmsdex/internal/scrape"
	"github.com/atlaspath/nmsdex/models"
	dbpkg "github.com/atlaspath/nmsdex/pkg/db"
	"github.com/urfave/cli/v2"
)

// StatsAction prints per-group item counts and recipe counts for the store.
func StatsAction(c *cli.Context) error {
	cfg, err := scrape.LoadConfigFromFlags(c)
	if err != nil {
		return err
	}

	store, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	groups, err := store.GroupCounts()
	if err != nil {
		return err
	}
	recipes, err := store.RecipeCounts()
	if err != nil {
		return err
	}

	fmt.Printf("Database: %s\n", store.Path())
	fmt.Println(strings.Repeat("-", 40))

	total := 0
	for _, group := range models.AllGroups {
		fmt.Printf("%-20s %5d items\n", group, groups[group])
		total += groups[group]
	}
	fmt.Printf("%-20s %5d items\n", "TOTAL", total)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-20s %5d recipes\n", "refiner", recipes[models.RecipeRefiner])
	fmt.Printf("%-20s %5d recipes\n", "cooking", recipes[models.RecipeCooking])

	return nil
}

// ResetAction clears every persisted row but keeps the database file.
func ResetAction(c *cli.Context) error {
	cfg, err := scrape.LoadConfigFromFlags(c)
	if err != nil {
		return err
	}

	store, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Reset(); err != nil {
		return err
	}

	fmt.Printf("Cleared all rows in %s\n", store.Path())
	return nil
}
