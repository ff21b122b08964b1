// Package loader reads JSONL review files into a dataset.
//
// Inputs may be files or directories. Unusable paths are logged and
// skipped so one bad path never aborts a run; malformed records do.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// Extension is the only file extension the loader reads.
const Extension = ".jsonl"

// MaxLineSize bounds a single JSONL record.
const MaxLineSize = 16 * 1024 * 1024

// Skip reasons reported for unusable inputs.
const (
	ReasonNotExist     = "does not exist"
	ReasonNotJSONL     = "is not a JSONL file"
	ReasonEmptyDir     = "does not contain any JSONL files"
	ReasonNotFileOrDir = "is neither a file nor a directory"
)

// Options configures a Loader.
type Options struct {
	// Require lists columns that must be present and non-null on every
	// record. Records failing the check abort the load.
	Require []string
}

// Report summarizes which inputs were read and which were skipped.
type Report struct {
	Files   []string
	Skipped []models.SkippedSource
}

// Loader reads JSONL inputs.
type Loader struct {
	logger *slog.Logger
	opts   Options
}

// New creates a Loader. A nil logger discards log output.
func New(logger *slog.Logger, opts Options) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger, opts: opts}
}

// ReadRecords loads every path with default options.
func ReadRecords(logger *slog.Logger, paths ...string) (*dataset.Dataset, error) {
	d, _, err := New(logger, Options{}).Load(paths...)
	return d, err
}

// Load reads paths in order and concatenates their records. Loading no
// source at all yields an empty dataset and no error.
func (l *Loader) Load(paths ...string) (*dataset.Dataset, *Report, error) {
	full := dataset.New(nil)
	report := &Report{}

	for _, path := range paths {
		files, reason := l.resolve(path)
		if reason != "" {
			l.logger.Error("skipping input", "path", path, "reason", reason)
			report.Skipped = append(report.Skipped, models.SkippedSource{Path: path, Reason: reason})
			continue
		}

		for _, file := range files {
			part, err := l.readFile(file)
			if err != nil {
				return full, report, err
			}
			full.Concat(part)
			report.Files = append(report.Files, file)
			l.logger.Info("loaded records", "file", file, "rows", part.Len())
		}
	}

	return full, report, nil
}

// resolve expands path into the JSONL files it names, or returns the reason
// it cannot be used.
func (l *Loader) resolve(path string) ([]string, string) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ReasonNotExist
	}

	switch {
	case info.Mode().IsRegular():
		if filepath.Ext(path) != Extension {
			return nil, ReasonNotJSONL
		}
		return []string{path}, ""

	case info.IsDir():
		matches, err := filepath.Glob(filepath.Join(path, "*"+Extension))
		if err != nil {
			return nil, ReasonEmptyDir
		}
		var files []string
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
				files = append(files, m)
			}
		}
		if len(files) == 0 {
			return nil, ReasonEmptyDir
		}
		sort.Strings(files)
		return files, ""

	default:
		return nil, ReasonNotFileOrDir
	}
}

func (l *Loader) readFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	d := dataset.New(nil)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		row, keys, err := decodeRecord(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if err := l.checkRequired(row); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		d.AddColumns(keys...)
		d.Append(row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return d, nil
}

func (l *Loader) checkRequired(row dataset.Row) error {
	for _, col := range l.opts.Require {
		if v, ok := row[col]; !ok || v == nil {
			return fmt.Errorf("%w: %s", dataset.ErrMissingField, col)
		}
	}
	return nil
}

// decodeRecord parses one JSON object, returning its keys in source order.
func decodeRecord(line []byte) (dataset.Row, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(line))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid JSON record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("invalid JSON record: not an object")
	}

	row := make(dataset.Row)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid JSON record: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("invalid JSON record: unexpected token %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("invalid JSON record: field %s: %w", key, err)
		}
		if _, dup := row[key]; !dup {
			keys = append(keys, key)
		}
		row[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON record: %w", err)
	}
	if dec.More() {
		return nil, nil, fmt.Errorf("invalid JSON record: trailing data")
	}
	return row, keys, nil
}
