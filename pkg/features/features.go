// Package features derives per-row review features: cleaned text, review
// length and the rating/like level buckets. Every derivation implements
// dataset.RowTransform and reads only the row it is given.
package features

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
	"github.com/dtnitsch/film-review-explorer/pkg/textnorm"
)

// wordRE matches one word token: a maximal run of letters, digits or underscores.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SiteSet is the set of website identifiers whose reviews are treated as
// CN text. One set must be used for every row of a run.
type SiteSet map[string]struct{}

// NewSiteSet builds a SiteSet, ignoring blank entries.
func NewSiteSet(sites ...string) SiteSet {
	set := make(SiteSet, len(sites))
	for _, s := range sites {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether website is a CN site.
func (s SiteSet) Contains(website string) bool {
	_, ok := s[website]
	return ok
}

// isCN reads the website cell of row and checks it against sites.
func isCN(row dataset.Row, sites SiteSet) (bool, error) {
	website, err := row.Text(models.ColWebsite)
	if err != nil {
		return false, err
	}
	return sites.Contains(website), nil
}

// CleanText normalizes the review with the CN or EN noise cleaner
// depending on the row's website.
type CleanText struct {
	Sites SiteSet
}

// Transform implements dataset.RowTransform.
func (c CleanText) Transform(row dataset.Row) (any, error) {
	review, err := row.Text(models.ColReview)
	if err != nil {
		return nil, err
	}
	cn, err := isCN(row, c.Sites)
	if err != nil {
		return nil, err
	}
	if cn {
		return textnorm.CleanCNNoise(review), nil
	}
	return textnorm.CleanENNoise(review), nil
}

// ReviewLength counts characters for CN reviews and word tokens otherwise.
type ReviewLength struct {
	Sites SiteSet
}

// Transform implements dataset.RowTransform.
func (l ReviewLength) Transform(row dataset.Row) (any, error) {
	review, err := row.Text(models.ColReview)
	if err != nil {
		return nil, err
	}
	cn, err := isCN(row, l.Sites)
	if err != nil {
		return nil, err
	}
	if cn {
		return utf8.RuneCountInString(review), nil
	}
	return len(wordRE.FindAllStringIndex(review, -1)), nil
}

// PlainReview strips HTML markup from the review.
type PlainReview struct{}

// Transform implements dataset.RowTransform.
func (PlainReview) Transform(row dataset.Row) (any, error) {
	review, err := row.Text(models.ColReview)
	if err != nil {
		return nil, err
	}
	return textnorm.StripMarkup(review)
}
