// Package config loads and validates datawash configuration from YAML
// files, with sensible defaults for every setting.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/datawash-io/datawash/internal/analyzer"
	"github.com/datawash-io/datawash/internal/suggest"
)

// Config represents the main configuration structure
type Config struct {
	// Similarity holds similar-column detection configuration
	Similarity SimilarityConfig `json:"similarity" mapstructure:"similarity" yaml:"similarity"`

	// Detectors holds detector selection and tuning
	Detectors DetectorsConfig `json:"detectors" mapstructure:"detectors" yaml:"detectors"`

	// Suggestions holds suggestion generation configuration
	Suggestions SuggestionsConfig `json:"suggestions" mapstructure:"suggestions" yaml:"suggestions"`

	// Profile holds profiling configuration
	Profile ProfileConfig `json:"profile" mapstructure:"profile" yaml:"profile"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// History holds run-history configuration
	History HistoryConfig `json:"history" mapstructure:"history" yaml:"history"`

	// Performance holds execution tuning
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// SimilarityConfig holds configuration for similar-column detection
type SimilarityConfig struct {
	// MinSimilarity is the reporting threshold for both name and value
	// similarity, in (0, 1]
	MinSimilarity float64 `json:"min_similarity" mapstructure:"min_similarity" yaml:"min_similarity"`

	// MinSizeRatio is the distinct-count ratio below which a candidate
	// pair is skipped
	MinSizeRatio float64 `json:"min_size_ratio" mapstructure:"min_size_ratio" yaml:"min_size_ratio"`

	// NumHashes is the MinHash signature width
	NumHashes int `json:"num_hashes" mapstructure:"num_hashes" yaml:"num_hashes"`

	// Bands and Rows control LSH banding; Bands*Rows should not exceed
	// NumHashes
	Bands int `json:"bands" mapstructure:"bands" yaml:"bands"`
	Rows  int `json:"rows" mapstructure:"rows" yaml:"rows"`

	// ExactThreshold is the distinct-count bound under which exact
	// Jaccard replaces the MinHash estimate
	ExactThreshold int `json:"exact_threshold" mapstructure:"exact_threshold" yaml:"exact_threshold"`
}

// DetectorsConfig holds detector selection and tuning
type DetectorsConfig struct {
	// Enabled lists detector names to run; empty means all
	Enabled []string `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// OutlierMethod selects outlier detection: iqr or zscore
	OutlierMethod string `json:"outlier_method" mapstructure:"outlier_method" yaml:"outlier_method"`

	// OutlierThreshold is the IQR multiplier or z-score cutoff
	OutlierThreshold float64 `json:"outlier_threshold" mapstructure:"outlier_threshold" yaml:"outlier_threshold"`
}

// SuggestionsConfig holds suggestion generation configuration
type SuggestionsConfig struct {
	// UseCase biases priorities: general, ml, analytics, export
	UseCase string `json:"use_case" mapstructure:"use_case" yaml:"use_case"`

	// MaxSuggestions caps the suggestion list after sorting
	MaxSuggestions int `json:"max_suggestions" mapstructure:"max_suggestions" yaml:"max_suggestions"`
}

// ProfileConfig holds profiling configuration
type ProfileConfig struct {
	// SampleSize caps the rows profiled; 0 disables sampling
	SampleSize int `json:"sample_size" mapstructure:"sample_size" yaml:"sample_size"`
}

// OutputConfig holds output formatting configuration
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether findings print their details map
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// HistoryConfig holds run-history configuration
type HistoryConfig struct {
	// Enabled turns on the SQLite run log
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Path is the history database file; empty uses .datawash/history.db
	Path string `json:"path" mapstructure:"path" yaml:"path"`
}

// PerformanceConfig holds execution tuning for the detector runner
type PerformanceConfig struct {
	// MaxGoroutines caps concurrent detectors; 0 uses the CPU count
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds one analysis run; 0 uses the default
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Similarity: SimilarityConfig{
			MinSimilarity:  analyzer.DefaultMinSimilarity,
			MinSizeRatio:   analyzer.DefaultMinSizeRatio,
			NumHashes:      analyzer.DefaultNumHashes,
			Bands:          analyzer.DefaultLSHBands,
			Rows:           analyzer.DefaultLSHRows,
			ExactThreshold: analyzer.DefaultExactThreshold,
		},
		Detectors: DetectorsConfig{
			Enabled:          []string{},
			OutlierMethod:    analyzer.DefaultOutlierMethod,
			OutlierThreshold: analyzer.DefaultIQRMultiplier,
		},
		Suggestions: SuggestionsConfig{
			UseCase:        "general",
			MaxSuggestions: suggest.DefaultMaxSuggestions,
		},
		Profile: ProfileConfig{
			SampleSize: 0,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    "",
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: 0,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is specified, common locations near the target are
// searched; with nothing found the defaults apply.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// New viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// configFileCandidates are the filenames searched, in priority order
var configFileCandidates = []string{
	"datawash.yaml",
	"datawash.yml",
	".datawash.yaml",
	".datawash.yml",
}

// findDefaultConfig looks for configuration files next to the target
// path, then in the working directory
func findDefaultConfig(targetPath string) string {
	var dirs []string
	if targetPath != "" {
		info, err := os.Stat(targetPath)
		if err == nil && info.IsDir() {
			dirs = append(dirs, targetPath)
		} else {
			dirs = append(dirs, filepath.Dir(targetPath))
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}

	for _, dir := range dirs {
		if found := searchConfigInDirectory(dir, configFileCandidates); found != "" {
			return found
		}
	}
	return ""
}

func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate validates the configuration values. Configuration errors
// fail fast, before any detector runs.
func (c *Config) Validate() error {
	if c.Similarity.MinSimilarity <= 0 || c.Similarity.MinSimilarity > 1 {
		return fmt.Errorf("similarity.min_similarity must be in (0, 1], got %g", c.Similarity.MinSimilarity)
	}
	if c.Similarity.MinSizeRatio <= 0 || c.Similarity.MinSizeRatio > 1 {
		return fmt.Errorf("similarity.min_size_ratio must be in (0, 1], got %g", c.Similarity.MinSizeRatio)
	}
	if c.Similarity.NumHashes < 1 {
		return fmt.Errorf("similarity.num_hashes must be >= 1, got %d", c.Similarity.NumHashes)
	}
	if c.Similarity.Bands < 1 || c.Similarity.Rows < 1 {
		return fmt.Errorf("similarity.bands and similarity.rows must be >= 1, got %d and %d",
			c.Similarity.Bands, c.Similarity.Rows)
	}
	if c.Similarity.Bands*c.Similarity.Rows > c.Similarity.NumHashes {
		return fmt.Errorf("similarity.bands (%d) * rows (%d) exceeds num_hashes (%d)",
			c.Similarity.Bands, c.Similarity.Rows, c.Similarity.NumHashes)
	}
	if c.Similarity.ExactThreshold < 0 {
		return fmt.Errorf("similarity.exact_threshold must be >= 0, got %d", c.Similarity.ExactThreshold)
	}

	validDetectors := map[string]bool{
		"missing": true, "duplicates": true, "types": true,
		"formats": true, "outliers": true, "similarity": true,
	}
	for _, name := range c.Detectors.Enabled {
		if !validDetectors[name] {
			return fmt.Errorf("unknown detector %q, must be one of: missing, duplicates, types, formats, outliers, similarity", name)
		}
	}
	if c.Detectors.OutlierMethod != "iqr" && c.Detectors.OutlierMethod != "zscore" {
		return fmt.Errorf("invalid detectors.outlier_method %q, must be iqr or zscore", c.Detectors.OutlierMethod)
	}
	if c.Detectors.OutlierThreshold <= 0 {
		return fmt.Errorf("detectors.outlier_threshold must be > 0, got %g", c.Detectors.OutlierThreshold)
	}

	validUseCases := map[string]bool{"general": true, "ml": true, "analytics": true, "export": true}
	if !validUseCases[c.Suggestions.UseCase] {
		return fmt.Errorf("invalid suggestions.use_case %q, must be one of: general, ml, analytics, export", c.Suggestions.UseCase)
	}
	if c.Suggestions.MaxSuggestions < 1 {
		return fmt.Errorf("suggestions.max_suggestions must be >= 1, got %d", c.Suggestions.MaxSuggestions)
	}

	if c.Profile.SampleSize < 0 {
		return fmt.Errorf("profile.sample_size must be >= 0, got %d", c.Profile.SampleSize)
	}

	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, yaml", c.Output.Format)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}
	return nil
}

// DetectorEnabled reports whether the named detector should run.
// An empty detectors.enabled list enables everything.
func (c *Config) DetectorEnabled(name string) bool {
	if len(c.Detectors.Enabled) == 0 {
		return true
	}
	for _, n := range c.Detectors.Enabled {
		if n == name {
			return true
		}
	}
	return false
}

// SimilarityAnalyzerConfig converts the configuration into the analyzer
// package's form
func (c *Config) SimilarityAnalyzerConfig() *analyzer.SimilarityConfig {
	return &analyzer.SimilarityConfig{
		MinSimilarity:  c.Similarity.MinSimilarity,
		MinSizeRatio:   c.Similarity.MinSizeRatio,
		NumHashes:      c.Similarity.NumHashes,
		Bands:          c.Similarity.Bands,
		Rows:           c.Similarity.Rows,
		ExactThreshold: c.Similarity.ExactThreshold,
	}
}
