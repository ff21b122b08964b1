package loader

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	single := filepath.Join(dir, "imdb.jsonl")
	writeFile(t, single, `{"website":"imdb","review":"great","rating_ratio":0.9}
{"website":"imdb","review":"bad","rating_ratio":null}
`)

	sub := filepath.Join(dir, "cn")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(sub, "b.jsonl"), `{"website":"douban","review":"二","like_ratio":0.4}`+"\n")
	writeFile(t, filepath.Join(sub, "a.jsonl"), "\n"+`{"website":"douban","review":"一"}`+"\n\n")
	writeFile(t, filepath.Join(sub, "notes.txt"), "ignored")

	d, report, err := New(nil, Options{}).Load(single, sub)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.Len() != 4 {
		t.Errorf("Len() = %d, want 4", d.Len())
	}
	if got, want := d.Column("review"), []any{"great", "bad", "一", "二"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Column(review) = %v, want %v", got, want)
	}
	if got, want := d.Columns(), []string{"website", "review", "rating_ratio", "like_ratio"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	if got, want := d.Column("rating_ratio"), []any{0.9, nil, nil, nil}; !reflect.DeepEqual(got, want) {
		t.Errorf("Column(rating_ratio) = %v, want %v", got, want)
	}
	if len(report.Files) != 3 || len(report.Skipped) != 0 {
		t.Errorf("report = %+v, want 3 files and no skips", report)
	}
}

func TestLoadSkipsUnusablePaths(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "reviews.json")
	writeFile(t, txt, `{"website":"imdb"}`)
	empty := filepath.Join(dir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "ok.jsonl")
	writeFile(t, good, `{"website":"imdb","review":"fine"}`)

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	d, report, err := New(logger, Options{}).Load(filepath.Join(dir, "missing.jsonl"), txt, empty, good)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}

	wantReasons := []string{ReasonNotExist, ReasonNotJSONL, ReasonEmptyDir}
	if len(report.Skipped) != len(wantReasons) {
		t.Fatalf("Skipped = %v, want %d entries", report.Skipped, len(wantReasons))
	}
	for i, want := range wantReasons {
		if report.Skipped[i].Reason != want {
			t.Errorf("Skipped[%d].Reason = %q, want %q", i, report.Skipped[i].Reason, want)
		}
	}
	if !strings.Contains(logs.String(), `"level":"ERROR"`) || !strings.Contains(logs.String(), ReasonNotJSONL) {
		t.Errorf("logs = %s, want ERROR entries naming the skip reason", logs.String())
	}
}

func TestLoadNothingYieldsEmptyDataset(t *testing.T) {
	d, err := ReadRecords(nil, filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if d.Len() != 0 || len(d.Columns()) != 0 {
		t.Errorf("ReadRecords() = %d rows, columns %v, want empty", d.Len(), d.Columns())
	}
}

func TestLoadMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	writeFile(t, path, `{"website":"imdb","review":"ok"}`+"\n"+`{"website":`+"\n")

	_, err := ReadRecords(nil, path)
	if err == nil || !strings.Contains(err.Error(), "bad.jsonl:2") {
		t.Errorf("ReadRecords() error = %v, want one naming bad.jsonl:2", err)
	}
}

func TestLoadRejectsNonObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "array.jsonl")
	writeFile(t, path, `[1,2,3]`+"\n")

	_, err := ReadRecords(nil, path)
	if err == nil || !strings.Contains(err.Error(), "not an object") {
		t.Errorf("ReadRecords() error = %v, want \"not an object\"", err)
	}
}

func TestLoadRequiredColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.jsonl")
	writeFile(t, path, `{"website":"imdb","review":"ok"}`+"\n"+`{"website":"imdb","review":null}`+"\n")

	_, _, err := New(nil, Options{Require: []string{"website", "review"}}).Load(path)
	if !errors.Is(err, dataset.ErrMissingField) {
		t.Fatalf("Load() error = %v, want ErrMissingField", err)
	}
	if !strings.Contains(err.Error(), "partial.jsonl:2") {
		t.Errorf("error %q does not name partial.jsonl:2", err)
	}
}
