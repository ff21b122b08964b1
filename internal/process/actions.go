package process

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/film-review-explorer/internal/common"
	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/analytics"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
	"github.com/dtnitsch/film-review-explorer/pkg/db"
	"github.com/dtnitsch/film-review-explorer/pkg/features"
	"github.com/dtnitsch/film-review-explorer/pkg/query"
	"github.com/dtnitsch/film-review-explorer/pkg/storage"
)

// summaryColumns get a value distribution in the run summary.
var summaryColumns = []string{models.ColRatingLevel, models.ColLikeLevel}

func ProcessAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.BuildConfig(c)
	if err != nil {
		return err
	}

	// Parse the filter before loading so a typo fails fast.
	filter, err := query.Parse(cfg.Filter)
	if err != nil {
		return err
	}

	d, report, err := common.LoadInputs(logger, cfg)
	if err != nil {
		return err
	}

	summary := &models.RunSummary{Status: "success", Skipped: report.Skipped}
	summary.Stats.Sources = len(report.Files)
	summary.Stats.RowsLoaded = d.Len()

	sites := features.NewSiteSet(cfg.CNSites...)
	logger.Info("deriving features", "rows", d.Len(), "cn_sites", len(sites))

	steps := features.Pipeline(sites, features.Options{
		StripHTML:      cfg.StripHTML,
		DetectLanguage: cfg.DetectLanguage,
	})
	if _, err := features.Apply(d, steps); err != nil {
		return err
	}

	kept, err := dataset.ConditionFilter(d, filter.Predicate())
	if err != nil {
		return err
	}
	summary.Stats.RowsKept = kept.Len()
	summary.Stats.RowsDropped = d.Len() - kept.Len()
	if cfg.Filter != "" {
		logger.Info("filtered rows", "filter", cfg.Filter, "kept", kept.Len(), "dropped", summary.Stats.RowsDropped)
	}

	a := &analytics.Analytics{}
	summary.Distributions = make(map[string]map[string]int, len(summaryColumns))
	for _, col := range summaryColumns {
		summary.Distributions[col] = a.Distribution(kept, col)
	}

	if cfg.Output != "" {
		s := &storage.Storage{Overwrite: c.Bool("force")}
		if err := s.SaveDataset(cfg.Output, kept, cfg.ExportFormat); err != nil {
			return fmt.Errorf("failed to export dataset: %w", err)
		}
		summary.Output = cfg.Output
		logger.Info("exported dataset", "path", cfg.Output, "format", cfg.ExportFormat, "rows", kept.Len())
	}

	if cfg.DBPath != "" {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		runID, err := database.SaveRun(c.Context, &db.Run{
			Inputs:     cfg.Inputs,
			CNSites:    cfg.CNSites,
			Filter:     cfg.Filter,
			RowsLoaded: summary.Stats.RowsLoaded,
			RowsKept:   summary.Stats.RowsKept,
		}, kept)
		if err != nil {
			return err
		}
		summary.RunID = runID
		logger.Info("saved run", "run_id", runID, "db", database.Path())
	}

	return common.WriteOutput(os.Stdout, summary, c.String("format"))
}
