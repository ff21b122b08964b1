package features

import (
	"fmt"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// Step is one derived column and the transform that fills it.
type Step struct {
	Column    string
	Transform dataset.RowTransform
}

// Options selects the optional derivations of a pipeline run.
type Options struct {
	StripHTML      bool
	DetectLanguage bool
}

// Pipeline returns the derivation steps for a run, in application order.
// With StripHTML the review column is replaced by its plain text before
// any other step reads it.
func Pipeline(sites SiteSet, opts Options) []Step {
	var steps []Step
	if opts.StripHTML {
		steps = append(steps, Step{Column: models.ColReview, Transform: PlainReview{}})
	}
	steps = append(steps,
		Step{Column: models.ColCleanedReview, Transform: CleanText{Sites: sites}},
		Step{Column: models.ColReviewLength, Transform: ReviewLength{Sites: sites}},
		Step{Column: models.ColRatingLevel, Transform: RatingLevel{}},
		Step{Column: models.ColLikeLevel, Transform: LikeLevel{}},
	)
	if opts.DetectLanguage {
		steps = append(steps, Step{Column: models.ColLanguage, Transform: Language{Detector: NewLanguageDetector()}})
	}
	return steps
}

// Apply runs every step over d in order. It stops at the first failing step.
func Apply(d *dataset.Dataset, steps []Step) (*dataset.Dataset, error) {
	for _, step := range steps {
		if _, err := dataset.UpdateColumn(d, step.Column, step.Transform); err != nil {
			return d, fmt.Errorf("derive %s: %w", step.Column, err)
		}
	}
	return d, nil
}
