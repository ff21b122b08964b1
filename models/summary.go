package models

// RunSummary is printed at the end of a CLI run.
type RunSummary struct {
	Status        string                    `json:"status" yaml:"status"`
	RunID         string                    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Stats         Stats                     `json:"stats" yaml:"stats"`
	Distributions map[string]map[string]int `json:"distributions,omitempty" yaml:"distributions,omitempty"`
	TopKeywords   []string                  `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`
	Output        string                    `json:"output,omitempty" yaml:"output,omitempty"`
	Skipped       []SkippedSource           `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Error         *ErrorInfo                `json:"error,omitempty" yaml:"error,omitempty"`
}

// Stats counts rows through the pipeline.
type Stats struct {
	Sources     int `json:"sources" yaml:"sources"`
	RowsLoaded  int `json:"rows_loaded" yaml:"rows_loaded"`
	RowsKept    int `json:"rows_kept" yaml:"rows_kept"`
	RowsDropped int `json:"rows_dropped" yaml:"rows_dropped"`
}

// SkippedSource records an input path the loader could not use.
type SkippedSource struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// ErrorInfo provides structured error information.
type ErrorInfo struct {
	Type             string   `json:"error_type" yaml:"error_type"`
	Message          string   `json:"message" yaml:"message"`
	SuggestedActions []string `json:"suggested_actions,omitempty" yaml:"suggested_actions,omitempty"`
}
