package features

import (
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// DefaultLanguages is the candidate set used when detecting review language.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
	lingua.French,
	lingua.German,
	lingua.Spanish,
}

// NewLanguageDetector builds a detector restricted to langs, or to
// DefaultLanguages when none are given.
func NewLanguageDetector(langs ...lingua.Language) lingua.LanguageDetector {
	if len(langs) == 0 {
		langs = DefaultLanguages
	}
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
}

// Language reports the detected language of the review as a lowercase
// ISO 639-1 code, or nil when the detector is not confident. It is a
// diagnostic column and never changes how a row is cleaned.
type Language struct {
	Detector lingua.LanguageDetector
}

// Transform implements dataset.RowTransform.
func (l Language) Transform(row dataset.Row) (any, error) {
	review, err := row.Text(models.ColReview)
	if err != nil {
		return nil, err
	}
	lang, ok := l.Detector.DetectLanguageOf(review)
	if !ok {
		return nil, nil
	}
	return strings.ToLower(lang.IsoCode639_1().String()), nil
}
