package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/film-review-explorer/internal/common"
	"github.com/dtnitsch/film-review-explorer/models"
	dbpkg "github.com/dtnitsch/film-review-explorer/pkg/db"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-36s  %-20s %-8s %-8s %-30s\n", "ID", "Created", "Loaded", "Kept", "Filter")
	fmt.Println(strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Printf("%-36s  %-20s %-8d %-8d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.RowsLoaded,
			r.RowsKept,
			r.Filter,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'fre db run <id>' to see details\n")

	return nil
}

// RunDetail is printed by RunAction.
type RunDetail struct {
	RunID   string                    `json:"run_id" yaml:"run_id"`
	Created string                    `json:"created" yaml:"created"`
	Inputs  []string                  `json:"inputs" yaml:"inputs"`
	CNSites []string                  `json:"cn_sites" yaml:"cn_sites"`
	Filter  string                    `json:"filter,omitempty" yaml:"filter,omitempty"`
	Stats   models.Stats              `json:"stats" yaml:"stats"`
	Levels  map[string]map[string]int `json:"levels" yaml:"levels"`
}

// RunAction shows details for a specific run, or the latest one.
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(c.Context, runID)
	if err != nil {
		return err
	}

	detail := RunDetail{
		RunID:   run.RunID,
		Created: run.CreatedAt.Format("2006-01-02 15:04:05"),
		Inputs:  run.Inputs,
		CNSites: run.CNSites,
		Filter:  run.Filter,
		Stats: models.Stats{
			RowsLoaded:  run.RowsLoaded,
			RowsKept:    run.RowsKept,
			RowsDropped: run.RowsLoaded - run.RowsKept,
		},
		Levels: make(map[string]map[string]int),
	}
	for _, col := range []string{models.ColRatingLevel, models.ColLikeLevel} {
		counts, err := database.LevelCounts(c.Context, runID, col)
		if err != nil {
			return err
		}
		detail.Levels[col] = counts
	}

	return common.WriteOutput(os.Stdout, detail, c.String("format"))
}
