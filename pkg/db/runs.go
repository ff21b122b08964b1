package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// ErrRunNotFound is returned when a run ID is unknown.
var ErrRunNotFound = errors.New("run not found")

// Run represents a processing run
type Run struct {
	RunID      string
	CreatedAt  time.Time
	Inputs     []string
	CNSites    []string
	Filter     string
	RowsLoaded int
	RowsKept   int
}

// levelColumns are the review columns LevelCounts may group by.
var levelColumns = map[string]bool{
	models.ColRatingLevel: true,
	models.ColLikeLevel:   true,
	models.ColWebsite:     true,
	models.ColLanguage:    true,
}

// SaveRun stores run and every row of d in a single transaction and returns
// the run ID. A run without an ID gets a new UUID.
func (db *DB) SaveRun(ctx context.Context, run *Run, d *dataset.Dataset) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	inputs, err := json.Marshal(run.Inputs)
	if err != nil {
		return "", fmt.Errorf("failed to encode inputs: %w", err)
	}
	sites, err := json.Marshal(run.CNSites)
	if err != nil {
		return "", fmt.Errorf("failed to encode cn sites: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, inputs, cn_sites, filter, rows_loaded, rows_kept)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.RunID, string(inputs), string(sites), run.Filter, run.RowsLoaded, run.RowsKept)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reviews (run_id, position, website, review, cleaned_review, review_length,
			rating_ratio, like_ratio, rating_level, like_level, language, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, row := range d.Rows() {
		var record []byte
		record, err = json.Marshal(row)
		if err != nil {
			return "", fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		_, err = stmt.ExecContext(ctx,
			run.RunID,
			i,
			textCell(row, models.ColWebsite),
			textCell(row, models.ColReview),
			textCell(row, models.ColCleanedReview),
			intCell(row, models.ColReviewLength),
			ratioCell(row, models.ColRatingRatio),
			ratioCell(row, models.ColLikeRatio),
			textCell(row, models.ColRatingLevel),
			textCell(row, models.ColLikeLevel),
			textCell(row, models.ColLanguage),
			string(record),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert review %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return run.RunID, nil
}

// GetRun returns a run by ID.
func (db *DB) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := db.QueryRowContext(ctx, `
		SELECT run_id, created_at, inputs, cn_sites, filter, rows_loaded, rows_kept
		FROM runs
		WHERE run_id = ?
	`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT run_id, created_at, inputs, cn_sites, filter, rows_loaded, rows_kept
		FROM runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// LoadReviews rebuilds the dataset stored for a run, in its original order.
func (db *DB) LoadReviews(ctx context.Context, runID string) (*dataset.Dataset, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT record FROM reviews WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	defer rows.Close()

	d := dataset.New(nil)
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		row := make(dataset.Row)
		if err := json.Unmarshal([]byte(record), &row); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		d.Append(row)
	}
	return d, rows.Err()
}

// LevelCounts groups a run's reviews by column. Null values are counted
// under the empty string.
func (db *DB) LevelCounts(ctx context.Context, runID, column string) (map[string]int, error) {
	if !levelColumns[column] {
		return nil, fmt.Errorf("invalid group column: %s", column)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT COALESCE(`+column+`, ''), COUNT(*)
		FROM reviews
		WHERE run_id = ?
		GROUP BY 1
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var inputs, sites string
	var filter sql.NullString
	if err := s.Scan(&run.RunID, &run.CreatedAt, &inputs, &sites, &filter, &run.RowsLoaded, &run.RowsKept); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(inputs), &run.Inputs); err != nil {
		return nil, fmt.Errorf("failed to decode inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(sites), &run.CNSites); err != nil {
		return nil, fmt.Errorf("failed to decode cn sites: %w", err)
	}
	run.Filter = filter.String
	return &run, nil
}

func textCell(row dataset.Row, col string) any {
	if s, ok := row[col].(string); ok {
		return s
	}
	return nil
}

func intCell(row dataset.Row, col string) any {
	v, ok := row[col]
	if !ok || v == nil {
		return nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil
	}
	return n
}

func ratioCell(row dataset.Row, col string) any {
	f, ok, err := row.Ratio(col)
	if err != nil || !ok {
		return nil
	}
	return f
}
