package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", dsn(":memory:"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	database := &DB{DB: sqlDB, path: ":memory:"}
	// Every pooled connection would get its own empty in-memory database.
	database.SetMaxOpenConns(1)

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func processed() *dataset.Dataset {
	return dataset.New([]string{"website", "review", "rating_ratio", "cleaned_review", "review_length", "rating_level", "like_level"},
		dataset.Row{"website": "douban", "review": "好看！！", "rating_ratio": 0.9, "cleaned_review": "好看！", "review_length": 4, "rating_level": "Good (>=8/10)", "like_level": nil, "extra": "kept"},
		dataset.Row{"website": "imdb", "review": "meh", "rating_ratio": 0.3, "cleaned_review": "meh", "review_length": 1, "rating_level": "Bad (<=4/10)", "like_level": nil},
		dataset.Row{"website": "imdb", "review": "fine", "rating_ratio": nil, "cleaned_review": "fine", "review_length": 1, "rating_level": nil, "like_level": nil},
	)
}

func TestSaveRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	run := &Run{Inputs: []string{"data/"}, CNSites: []string{"douban"}, Filter: "website!=null", RowsLoaded: 3, RowsKept: 3}
	runID, err := db.SaveRun(ctx, run, processed())
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if runID == "" || runID != run.RunID {
		t.Fatalf("SaveRun() runID = %q, run.RunID = %q", runID, run.RunID)
	}

	got, err := db.GetRun(ctx, runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if got.RowsLoaded != 3 || got.RowsKept != 3 {
		t.Errorf("GetRun() rows = %d/%d, want 3/3", got.RowsLoaded, got.RowsKept)
	}
	if len(got.CNSites) != 1 || got.CNSites[0] != "douban" {
		t.Errorf("GetRun() CNSites = %v, want [douban]", got.CNSites)
	}
	if got.Filter != "website!=null" {
		t.Errorf("GetRun() Filter = %q", got.Filter)
	}
	if got.CreatedAt.IsZero() {
		t.Error("GetRun() CreatedAt is zero")
	}
}

func TestGetRunNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.GetRun(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestLoadReviews(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	runID, err := db.SaveRun(ctx, &Run{}, processed())
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	d, err := db.LoadReviews(ctx, runID)
	if err != nil {
		t.Fatalf("LoadReviews() error = %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("LoadReviews() len = %d, want 3", d.Len())
	}
	if d.Row(0)["extra"] != "kept" {
		t.Errorf("LoadReviews() lost extra column: %v", d.Row(0))
	}
	if d.Row(2)["review"] != "fine" {
		t.Errorf("LoadReviews() order changed: %v", d.Row(2))
	}
}

func TestLevelCounts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	runID, err := db.SaveRun(ctx, &Run{}, processed())
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	tests := []struct {
		column string
		want   map[string]int
	}{
		{column: "rating_level", want: map[string]int{"Good (>=8/10)": 1, "Bad (<=4/10)": 1, "": 1}},
		{column: "website", want: map[string]int{"douban": 1, "imdb": 2}},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := db.LevelCounts(ctx, runID, tt.column)
			if err != nil {
				t.Fatalf("LevelCounts() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("LevelCounts() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("LevelCounts()[%q] = %d, want %d", k, got[k], v)
				}
			}
		})
	}

	if _, err := db.LevelCounts(ctx, runID, "review; DROP TABLE runs"); err == nil {
		t.Error("LevelCounts() accepted an invalid column")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	for _, id := range []string{"first", "second", "third"} {
		if _, err := db.SaveRun(ctx, &Run{RunID: id}, dataset.New(nil)); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", id, err)
		}
	}

	runs, err := db.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() len = %d, want 2", len(runs))
	}
	if runs[0].RunID != "third" {
		t.Errorf("ListRuns()[0] = %s, want third", runs[0].RunID)
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
	runID, err := database.SaveRun(context.Background(), &Run{Inputs: []string{"a.jsonl"}}, processed())
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	database.Close()

	// Reopening finds the existing schema and data.
	database, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer database.Close()

	run, err := database.GetRun(context.Background(), runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.RowsLoaded != 0 || len(run.Inputs) != 1 {
		t.Errorf("GetRun() = %+v", run)
	}
}
