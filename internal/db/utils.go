package db

import (
	"fmt"

	dbpkg "github.com/dtnitsch/film-review-explorer/pkg/db"
	"github.com/urfave/cli/v2"
)

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (string, error) {
	if c.NArg() > 0 {
		return c.Args().First(), nil
	}

	runs, err := database.ListRuns(c.Context, 1)
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	if len(runs) == 0 {
		return "", fmt.Errorf("no runs found. Run 'fre process --db ...' first")
	}
	return runs[0].RunID, nil
}
