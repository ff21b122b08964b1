package features

import (
	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// Rating level labels.
const (
	RatingGood = "Good (>=8/10)"
	RatingBad  = "Bad (<=4/10)"
	RatingOk   = "Ok (4~8/10)"
)

// Like level labels.
const (
	LikeMostlyAgree      = "Mostly Agree (>80%)"
	LikeSomewhatAgree    = "Somewhat Agree (50%~80%)"
	LikeSomewhatDisagree = "Somewhat Disagree (20%~50%)"
	LikeMostlyDisagree   = "Mostly Disagree (<20%)"
)

// levelRule pairs a threshold test with the label it assigns.
type levelRule struct {
	match func(ratio float64) bool
	label string
}

// Rules are checked top to bottom and the first match wins. The rating and
// like thresholds are defined independently and do not line up.
var (
	ratingRules = []levelRule{
		{match: func(r float64) bool { return r >= 0.8 }, label: RatingGood},
		{match: func(r float64) bool { return r <= 0.4 }, label: RatingBad},
		{match: func(float64) bool { return true }, label: RatingOk},
	}

	likeRules = []levelRule{
		{match: func(r float64) bool { return r >= 0.8 }, label: LikeMostlyAgree},
		{match: func(r float64) bool { return 0.5 < r && r < 0.8 }, label: LikeSomewhatAgree},
		{match: func(r float64) bool { return 0.2 < r && r <= 0.5 }, label: LikeSomewhatDisagree},
		{match: func(float64) bool { return true }, label: LikeMostlyDisagree},
	}
)

// bucket maps the ratio in col to a label. A missing ratio yields nil.
func bucket(row dataset.Row, col string, rules []levelRule) (any, error) {
	ratio, ok, err := row.Ratio(col)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	for _, rule := range rules {
		if rule.match(ratio) {
			return rule.label, nil
		}
	}
	return nil, nil
}

// RatingLevel buckets rating_ratio into Good, Ok or Bad.
type RatingLevel struct{}

// Transform implements dataset.RowTransform.
func (RatingLevel) Transform(row dataset.Row) (any, error) {
	return bucket(row, models.ColRatingRatio, ratingRules)
}

// LikeLevel buckets like_ratio into four agreement levels.
type LikeLevel struct{}

// Transform implements dataset.RowTransform.
func (LikeLevel) Transform(row dataset.Row) (any, error) {
	return bucket(row, models.ColLikeRatio, likeRules)
}
