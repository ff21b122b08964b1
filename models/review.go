package models

// Raw columns expected on review records.
const (
	ColWebsite     = "website"
	ColReview      = "review"
	ColRatingRatio = "rating_ratio"
	ColLikeRatio   = "like_ratio"
)

// Derived columns written by the pipeline.
const (
	ColCleanedReview = "cleaned_review"
	ColReviewLength  = "review_length"
	ColRatingLevel   = "rating_level"
	ColLikeLevel     = "like_level"
	ColLanguage      = "language"
)
