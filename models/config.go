// Package models defines column names, configuration and output structures.
package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats for summaries and exports.
const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
)

// PipelineConfig holds runtime configuration for a processing run.
// Values can come from a YAML file; CLI flags override them.
type PipelineConfig struct {
	Inputs         []string `yaml:"inputs"`
	CNSites        []string `yaml:"cn_sites"`
	Filter         string   `yaml:"filter"`
	Output         string   `yaml:"output"`
	ExportFormat   string   `yaml:"export_format"`
	DBPath         string   `yaml:"db"`
	StripHTML      bool     `yaml:"strip_html"`
	DetectLanguage bool     `yaml:"detect_language"`
	Require        []string `yaml:"require"`
}

// LoadConfig reads a PipelineConfig from a YAML file.
func LoadConfig(path string) (*PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the fields every run needs and fills defaults.
func (c *PipelineConfig) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("no inputs provided")
	}
	if c.ExportFormat == "" {
		c.ExportFormat = FormatJSONL
	}
	c.ExportFormat = strings.ToLower(c.ExportFormat)
	if c.ExportFormat != FormatJSONL && c.ExportFormat != FormatYAML {
		return fmt.Errorf("unsupported export format: %s", c.ExportFormat)
	}
	return nil
}

// SplitList splits comma-separated flag values and drops blanks.
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
