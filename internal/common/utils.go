package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/film-review-explorer/models"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
	"github.com/dtnitsch/film-review-explorer/pkg/loader"
)

// NewLogger builds the JSON stderr logger used by every command.
// --quiet limits output to errors.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// BuildConfig loads --config when given and applies explicitly set flags on top.
func BuildConfig(c *cli.Context) (*models.PipelineConfig, error) {
	cfg := &models.PipelineConfig{}
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("input") {
		cfg.Inputs = c.StringSlice("input")
	}
	if c.Args().Present() {
		cfg.Inputs = append(cfg.Inputs, c.Args().Slice()...)
	}
	if c.IsSet("cn-sites") {
		cfg.CNSites = c.StringSlice("cn-sites")
	}
	if c.IsSet("filter") {
		cfg.Filter = c.String("filter")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("export-format") {
		cfg.ExportFormat = c.String("export-format")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("strip-html") {
		cfg.StripHTML = c.Bool("strip-html")
	}
	if c.IsSet("detect-language") {
		cfg.DetectLanguage = c.Bool("detect-language")
	}
	if c.IsSet("require") {
		cfg.Require = c.StringSlice("require")
	}

	cfg.Inputs = models.SplitList(cfg.Inputs)
	cfg.CNSites = models.SplitList(cfg.CNSites)
	cfg.Require = models.SplitList(cfg.Require)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInputs reads cfg.Inputs with the configured required columns.
func LoadInputs(logger *slog.Logger, cfg *models.PipelineConfig) (*dataset.Dataset, *loader.Report, error) {
	d, report, err := loader.New(logger, loader.Options{Require: cfg.Require}).Load(cfg.Inputs...)
	if err != nil {
		return nil, report, fmt.Errorf("failed to load inputs: %w", err)
	}
	return d, report, nil
}

// WriteOutput encodes v to w as indented JSON or YAML.
func WriteOutput(w io.Writer, v any, format string) error {
	switch format {
	case models.FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case models.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
