package main

import (
	"log"
	"os"

	dbcmd "github.com/atlaspath/nmsdex/internal/db"
	exportcmd "github.com/atlaspath/nmsdex/internal/export"
	"github.com/atlaspath/nmsdex/internal/scrape"
	"github.com/urfave/cli/v2"
)

// commonFlags are shared by every command that touches config or the store.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "nmsdex.yaml",
			Usage: "path to the YAML config file",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "path to the SQLite database (overrides config)",
		},
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "directory for exported JSON files (overrides config)",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "only log errors",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "nmsdex",
		Usage: "scrape the No Man's Sky wiki into categorized JSON data files",
		Commands: []*cli.Command{
			{
				Name:   "scrape",
				Usage:  "fetch wiki pages, extract and classify items, persist to the database",
				Action: scrape.Action,
				Flags: append(commonFlags(),
					&cli.Float64Flag{
						Name:  "delay",
						Usage: "seconds to wait between requests (overrides config)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "stop after this many pages (0 = no limit)",
					},
					&cli.BoolFlag{
						Name:  "hard-reset",
						Usage: "delete the database and output directory before scraping",
					},
				),
			},
			{
				Name:   "export",
				Usage:  "write per-group JSON files from the database",
				Action: exportcmd.Action,
				Flags:  commonFlags(),
			},
			{
				Name:  "db",
				Usage: "inspect and maintain the local database",
				Subcommands: []*cli.Command{
					{
						Name:   "stats",
						Usage:  "print item and recipe counts",
						Action: dbcmd.StatsAction,
						Flags:  commonFlags(),
					},
					{
						Name:   "reset",
						Usage:  "delete all rows, keep the database file",
						Action: dbcmd.ResetAction,
						Flags:  commonFlags(),
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
