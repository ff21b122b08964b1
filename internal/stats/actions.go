package stats

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
	"github.com/dtnitsch/film-review-explorer/pkg/mapreduce"
)

// Report is printed by the stats command.
type Report struct {
	RunID         string                    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Rows          int                       `json:"rows" yaml:"rows"`
	Distributions map[string]map[string]int `json:"distributions" yaml:"distributions"`
	TopKeywords   []string                  `json:"top_keywords" yaml:"top_keywords"`
}

// StatsAction reports level distributions and the most frequent keywords
// of non-CN reviews, either for fresh inputs or for a stored run.
func StatsAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	var (
		d     *dataset.Dataset
		sites features.SiteSet
		runID = c.String("run")
	)

	if runID != "" {
		database, err := db.Open(c.String("db"))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		run, err := database.GetRun(c.Context, runID)
		if err != nil {
			return err
		}
		d, err = database.LoadReviews(c.Context, runID)
		if err != nil {
			return err
		}
		sites = features.NewSiteSet(run.CNSites...)
	} else {
		cfg, err := common.BuildConfig(c)
		if err != nil {
			return err
		}
		d, _, err = common.LoadInputs(logger, cfg)
		if err != nil {
			return err
		}
		sites = features.NewSiteSet(cfg.CNSites...)
		if _, err := features.Apply(d, features.Pipeline(sites, features.Options{})); err != nil {
			return err
		}
	}

	return common.WriteOutput(os.Stdout, Build(d, sites, runID, c.Int("top")), c.String("format"))
}

// Build computes the stats report for a processed dataset.
func Build(d *dataset.Dataset, sites features.SiteSet, runID string, top int) *Report {
	a := &analytics.Analytics{}
	report := &Report{
		RunID: runID,
		Rows:  d.Len(),
		Distributions: map[string]map[string]int{
			models.ColRatingLevel: a.Distribution(d, models.ColRatingLevel),
			models.ColLikeLevel:   a.Distribution(d, models.ColLikeLevel),
			models.ColWebsite:     a.Distribution(d, models.ColWebsite),
		},
	}

	// CN reviews are not whitespace-tokenized, so they have no word keywords.
	notCN := func(row dataset.Row) bool {
		website, _ := row[models.ColWebsite].(string)
		return !sites.Contains(website)
	}
	counts := mapreduce.Reduce(mapreduce.MapColumn(d, models.ColCleanedReview, notCN, a))
	report.TopKeywords = mapreduce.TopKeywords(counts, top)

	return report
}
