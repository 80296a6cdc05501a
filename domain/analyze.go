package domain

import (
	"context"
	"io"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// AnalyzeRequest represents a request to analyze one dataset
type AnalyzeRequest struct {
	// Path to the input data file
	Path string

	// UseCase biases suggestion prioritization
	UseCase UseCase

	// MaxSuggestions caps the suggestion list, applied after sorting
	MaxSuggestions int

	// MinSimilarity is the similar-columns detection threshold
	MinSimilarity float64

	// SampleSize limits the number of rows profiled (0 = no sampling)
	SampleSize int

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ShowDetails  bool

	// ConfigPath is an explicit config file path
	ConfigPath string
}

// AnalyzeResponse is the complete result of one analysis session
type AnalyzeResponse struct {
	// RunID uniquely identifies this analysis session
	RunID string `json:"run_id" yaml:"run_id"`

	// Source is the analyzed file path
	Source string `json:"source" yaml:"source"`

	Profile     *DatasetProfile `json:"profile" yaml:"profile"`
	Findings    []Finding       `json:"findings" yaml:"findings"`
	Suggestions []Suggestion    `json:"suggestions" yaml:"suggestions"`

	// QualityScore is the 0-100 data quality score
	QualityScore int `json:"quality_score" yaml:"quality_score"`

	// Warnings holds per-column and per-detector failures that did not
	// abort the run
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
	DurationMs  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// CleanRequest represents a request to apply suggestions to a dataset
type CleanRequest struct {
	// Path to the input data file
	Path string

	// OutputPath is where the cleaned data is written
	OutputPath string

	// SuggestionIDs selects which suggestions to apply; empty means all
	SuggestionIDs []int

	UseCase        UseCase
	MaxSuggestions int
	MinSimilarity  float64
	ConfigPath     string
}

// CleanResponse is the result of a cleaning run
type CleanResponse struct {
	RunID      string `json:"run_id" yaml:"run_id"`
	Source     string `json:"source" yaml:"source"`
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Applied is the ordered audit trail of executed transformations
	Applied []TransformationResult `json:"applied" yaml:"applied"`

	RowsBefore int `json:"rows_before" yaml:"rows_before"`
	RowsAfter  int `json:"rows_after" yaml:"rows_after"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	DurationMs  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// AnalyzeService defines the core analysis pipeline
type AnalyzeService interface {
	// Analyze profiles a dataset, runs detectors, and produces
	// prioritized suggestions
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}

// CleanService applies resolved, scheduled suggestions to a dataset
type CleanService interface {
	Clean(ctx context.Context, req CleanRequest) (*CleanResponse, error)
}

// ExecutableTask represents a unit of work for the parallel executor
type ExecutableTask interface {
	// Name returns the task name for error reporting
	Name() string

	// IsEnabled returns whether this task should run
	IsEnabled() bool

	// Execute runs the task
	Execute(ctx context.Context) (any, error)
}

// ProgressManager manages progress reporting for long operations
type ProgressManager interface {
	// StartTask creates a new progress task
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress bars are shown
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
