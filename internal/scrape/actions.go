package scrape

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlaspath/nmsdex/models"
	"github.com/atlaspath/nmsdex/pkg/db"
	"github.com/atlaspath/nmsdex/pkg/mediawiki"
	"github.com/urfave/cli/v2"
)

// Action is the entry point of `nmsdex scrape`.
func Action(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))

	cfg, err := LoadConfigFromFlags(c)
	if err != nil {
		return err
	}

	if c.Bool("hard-reset") {
		if err := hardReset(cfg, logger); err != nil {
			return err
		}
	}

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	client := mediawiki.NewClient(
		cfg.BaseURL,
		cfg.UserAgent,
		time.Duration(cfg.Delay*float64(time.Second)),
		nil,
	)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	runner := &Runner{
		Source: client,
		Store:  store,
		Logger: logger,
		Limit:  cfg.Limit,
	}
	if err := runner.Run(ctx, cfg.Categories); err != nil {
		return err
	}

	logger.Info("scrape finished", "db", store.Path(), "elapsed", time.Since(start).Round(time.Second).String())
	return nil
}

// NewLogger builds the JSON logger every command shares. --quiet raises the
// level to error.
func NewLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// LoadConfigFromFlags loads the YAML config and applies CLI flag overrides.
func LoadConfigFromFlags(c *cli.Context) (*models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("delay") {
		cfg.Delay = c.Float64("delay")
	}
	if c.IsSet("limit") {
		cfg.Limit = c.Int("limit")
	}
	return cfg, nil
}

// hardReset deletes the database file and the output directory for a clean
// slate before scraping.
func hardReset(cfg *models.Config, logger *slog.Logger) error {
	if err := os.Remove(cfg.DBPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove database: %w", err)
	}
	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("failed to remove output dir: %w", err)
	}
	logger.Info("hard reset complete", "db", cfg.DBPath, "output_dir", cfg.OutputDir)
	return nil
}
