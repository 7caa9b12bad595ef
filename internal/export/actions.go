// Package export wires the export layer to the CLI.
package export

import (
	"fmt"
	"sort"

	"github.com/atlaspath/nmsdex/internal/scrape"
	"github.com/atlaspath/nmsdex/pkg/db"
	"github.com/atlaspath/nmsdex/pkg/export"
	"github.com/urfave/cli/v2"
)

// Action is the entry point of `nmsdex export`: one JSON array file per item
// group plus the two recipe files.
func Action(c *cli.Context) error {
	logger := scrape.NewLogger(c.Bool("quiet"))

	cfg, err := scrape.LoadConfigFromFlags(c)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	writer := export.NewWriter(store, cfg.OutputDir)
	counts, err := writer.WriteAll()
	if err != nil {
		return err
	}

	files := make([]string, 0, len(counts))
	for file := range counts {
		files = append(files, file)
	}
	sort.Strings(files)

	total := 0
	for _, file := range files {
		fmt.Printf("%-24s %5d records\n", file, counts[file])
		total += counts[file]
	}
	fmt.Printf("%-24s %5d records\n", "TOTAL", total)

	logger.Info("export finished", "output_dir", cfg.OutputDir, "files", len(files))
	return nil
}
