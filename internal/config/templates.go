package config

import "fmt"

// UseCasePreset holds the settings an init wizard varies per use case
type UseCasePreset struct {
	UseCase        string
	MaxSuggestions int
	OutlierMethod  string
	SampleSize     int
}

// GetUseCasePresets returns the starting points for each use case
func GetUseCasePresets() map[string]UseCasePreset {
	return map[string]UseCasePreset{
		"general": {
			UseCase:        "general",
			MaxSuggestions: 50,
			OutlierMethod:  "iqr",
			SampleSize:     0,
		},
		"ml": {
			UseCase:        "ml",
			MaxSuggestions: 50,
			OutlierMethod:  "zscore",
			SampleSize:     100000,
		},
		"analytics": {
			UseCase:        "analytics",
			MaxSuggestions: 30,
			OutlierMethod:  "iqr",
			SampleSize:     0,
		},
		"export": {
			UseCase:        "export",
			MaxSuggestions: 30,
			OutlierMethod:  "iqr",
			SampleSize:     0,
		},
	}
}

// GenerateConfigYAML renders a commented starter configuration for the
// given preset, suitable for writing as datawash.yaml
func GenerateConfigYAML(preset UseCasePreset) string {
	outlierThreshold := 1.5
	if preset.OutlierMethod == "zscore" {
		outlierThreshold = 3.0
	}
	return fmt.Sprintf(`# datawash configuration
# Generated by datawash init

similarity:
  # Reporting threshold for name and value similarity
  min_similarity: 0.8
  # Candidate pairs with a distinct-count ratio below this are skipped
  min_size_ratio: 0.5
  num_hashes: 128
  bands: 32
  rows: 4
  # Columns with fewer distinct values use exact Jaccard
  exact_threshold: 2000

detectors:
  # Empty list runs every detector
  enabled: []
  outlier_method: %s
  outlier_threshold: %g

suggestions:
  use_case: %s
  max_suggestions: %d

profile:
  # 0 profiles every row
  sample_size: %d

output:
  format: text
  show_details: false

history:
  enabled: false
  path: ""
`, preset.OutlierMethod, outlierThreshold, preset.UseCase, preset.MaxSuggestions, preset.SampleSize)
}
