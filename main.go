package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/film-review-explorer/internal/db"
	"github.com/dtnitsch/film-review-explorer/internal/inspect"
	"github.com/dtnitsch/film-review-explorer/internal/process"
	"github.com/dtnitsch/film-review-explorer/internal/stats"
	dbpkg "github.com/dtnitsch/film-review-explorer/pkg/db"
	"github.com/dtnitsch/film-review-explorer/pkg/help"
)

const version = "0.1.0"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	quietFlag := &cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"}
	formatFlag := &cli.StringFlag{Name: "format", Value: "json", Usage: "summary output format: json or yaml"}
	configFlag := &cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML pipeline config file"}
	inputFlag := &cli.StringSliceFlag{Name: "input", Aliases: []string{"i"}, Usage: "JSONL file or directory (repeatable, comma-separated)"}
	sitesFlag := &cli.StringSliceFlag{Name: "cn-sites", Usage: "website identifiers treated as CN text"}
	dbFlag := &cli.StringFlag{Name: "db", Value: dbpkg.DefaultDBName, Usage: "SQLite database path"}

	return &cli.App{
		Name:    "fre",
		Usage:   "normalize film review records and derive rating/like levels",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "quickstart",
				Usage: "print a YAML quick start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
			{
				Name:      "process",
				Usage:     "load reviews, derive features, filter and export",
				ArgsUsage: "[PATH...]",
				Flags: []cli.Flag{
					quietFlag, formatFlag, configFlag, inputFlag, sitesFlag,
					&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: `row filter, e.g. "website=douban AND rating_ratio>=0.8"`},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "export processed rows to this file"},
					&cli.StringFlag{Name: "export-format", Value: "jsonl", Usage: "export format: jsonl or yaml"},
					&cli.BoolFlag{Name: "force", Usage: "overwrite an existing output file"},
					&cli.StringFlag{Name: "db", Usage: "also save the run to this SQLite database"},
					&cli.BoolFlag{Name: "strip-html", Usage: "strip HTML markup from reviews before cleaning"},
					&cli.BoolFlag{Name: "detect-language", Usage: "add a detected language column"},
					&cli.StringSliceFlag{Name: "require", Usage: "columns every record must carry"},
				},
				Action: process.ProcessAction,
			},
			{
				Name:      "types",
				Usage:     "show the value types present in each column",
				ArgsUsage: "[PATH...]",
				Flags:     []cli.Flag{quietFlag, formatFlag, configFlag, inputFlag},
				Action:    inspect.TypesAction,
			},
			{
				Name:      "stats",
				Usage:     "show level distributions and top keywords",
				ArgsUsage: "[PATH...]",
				Flags: []cli.Flag{
					quietFlag, formatFlag, configFlag, inputFlag, sitesFlag, dbFlag,
					&cli.StringFlag{Name: "run", Usage: "read a stored run instead of inputs"},
					&cli.IntFlag{Name: "top", Value: 25, Usage: "number of keywords"},
				},
				Action: stats.StatsAction,
			},
			{
				Name:  "db",
				Usage: "inspect stored runs",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "list recent runs",
						Flags:  []cli.Flag{dbFlag, &cli.IntFlag{Name: "limit", Value: 20}},
						Action: db.RunsAction,
					},
					{
						Name:      "run",
						Usage:     "show a run (latest when no ID is given)",
						ArgsUsage: "[RUN_ID]",
						Flags:     []cli.Flag{dbFlag, formatFlag},
						Action:    db.RunAction,
					},
				},
			},
		},
	}
}
