package stats

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
	"github.com/dtnitsch/film-review-explorer/pkg/features"
)

func TestBuild(t *testing.T) {
	sites := features.NewSiteSet("douban")
	d := dataset.New([]string{"website", "review", "rating_ratio", "like_ratio"},
		dataset.Row{"website": "douban", "review": "演技 很好 演技", "rating_ratio": 0.9, "like_ratio": 0.9},
		dataset.Row{"website": "imdb", "review": "Great acting,, great plot", "rating_ratio": 0.5, "like_ratio": nil},
		dataset.Row{"website": "imdb", "review": "Acting was weak", "rating_ratio": 0.2, "like_ratio": 0.3},
	)
	if _, err := features.Apply(d, features.Pipeline(sites, features.Options{})); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	report := Build(d, sites, "", 2)

	if report.Rows != 3 {
		t.Errorf("Rows = %d, want 3", report.Rows)
	}

	tests := []struct {
		column string
		want   map[string]int
	}{
		{column: "rating_level", want: map[string]int{features.RatingGood: 1, features.RatingOk: 1, features.RatingBad: 1}},
		{column: "website", want: map[string]int{"douban": 1, "imdb": 2}},
	}
	for _, tt := range tests {
		if got := report.Distributions[tt.column]; !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Distributions[%s] = %v, want %v", tt.column, got, tt.want)
		}
	}

	if want := []string{"acting:2", "great:2"}; !reflect.DeepEqual(report.TopKeywords, want) {
		t.Errorf("TopKeywords = %v, want %v", report.TopKeywords, want)
	}
}
