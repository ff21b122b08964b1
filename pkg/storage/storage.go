package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// ErrFileExists is returned by SaveDataset when the target exists and
// Overwrite is off.
var ErrFileExists = errors.New("file already exists")

type Storage struct {
	// Overwrite lets SaveDataset replace an existing file.
	Overwrite bool
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil || !os.IsNotExist(err)
}

// SaveDataset writes d to filePath as JSONL or YAML.
func (s *Storage) SaveDataset(filePath string, d *dataset.Dataset, format string) error {
	if !s.Overwrite && s.HasFile(filePath) {
		return fmt.Errorf("%w: %s", ErrFileExists, filePath)
	}
	var buf bytes.Buffer
	if err := EncodeDataset(&buf, d, format); err != nil {
		return err
	}
	return s.SaveFile(filePath, buf.Bytes())
}

// EncodeDataset writes d to w. Keys of every record follow the dataset's
// column order; columns a row lacks are written as null.
func EncodeDataset(w io.Writer, d *dataset.Dataset, format string) error {
	switch format {
	case models.FormatJSONL:
		return encodeJSONL(w, d)
	case models.FormatYAML:
		return encodeYAML(w, d)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func encodeJSONL(w io.Writer, d *dataset.Dataset) error {
	columns := d.Columns()
	for i, row := range d.Rows() {
		var line bytes.Buffer
		line.WriteByte('{')
		for j, col := range columns {
			if j > 0 {
				line.WriteByte(',')
			}
			key, _ := marshalJSON(col)
			val, err := marshalJSON(row[col])
			if err != nil {
				return fmt.Errorf("row %d, column %s: %w", i, col, err)
			}
			line.Write(key)
			line.WriteByte(':')
			line.Write(val)
		}
		line.WriteString("}\n")
		if _, err := w.Write(line.Bytes()); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	return nil
}

// marshalJSON encodes v without HTML escaping so labels like ">=8/10" stay readable.
func marshalJSON(v any) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

func encodeYAML(w io.Writer, d *dataset.Dataset) error {
	columns := d.Columns()
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for i, row := range d.Rows() {
		record := &yaml.Node{Kind: yaml.MappingNode}
		for _, col := range columns {
			var val yaml.Node
			if err := val.Encode(row[col]); err != nil {
				return fmt.Errorf("row %d, column %s: %w", i, col, err)
			}
			record.Content = append(record.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: col},
				&val,
			)
		}
		doc.Content = append(doc.Content, record)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	return enc.Close()
}
