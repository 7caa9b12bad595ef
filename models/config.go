// Package models defines the data structures shared across the pipeline.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for a scrape run. Values come from the
// optional YAML config file; CLI flags override individual fields.
type Config struct {
	BaseURL    string   `yaml:"base_url"`
	UserAgent  string   `yaml:"user_agent"`
	DBPath     string   `yaml:"db_path"`
	OutputDir  string   `yaml:"output_dir"`
	Delay      float64  `yaml:"delay_seconds"`
	Limit      int      `yaml:"limit"`
	Categories []string `yaml:"categories"`
}

// DefaultConfig returns the built-in configuration used when no config file
// is present.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "https://nomanssky.fandom.com",
		UserAgent: "nmsdex/1.0 (+https://github.com/atlaspath/nmsdex)",
		DBPath:    "nmsdex.db",
		OutputDir: "data",
		Delay:     0.3,
		Categories: []string{
			"Artifact", "Blueprints", "Fuel elements", "Products",
			"Raw Materials", "Resources", "Special elements", "Technology",
			"Harvested Agricultural Substance", "Flora elements", "Flora",
			"Gases", "Minerals", "Earth elements",
			"Products - Artifact", "Products - Base Building",
			"Products - Building Part", "Products - Component",
			"Products - Constructed Technology", "Products - Consumable",
			"Products - Container", "Products - Curiosity",
			"Products - Customisation Part", "Products - Fish",
			"Products - Procedural", "Products - Technology",
			"Products - Trade Commodity", "Products - Tradeable",
			"Exosuit", "Grenade technology", "Health technology",
			"Hyperdrive technology", "Laser technology", "Multi-Tool",
			"Procedural Upgrades", "Projectile technology",
			"Propulsion technology", "Protection technology",
			"Scan technology", "Stamina technology", "Utilities technology",
			"Weapons technology", "Upgrade Modules",
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; an unreadable or malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
