package domain

import "fmt"

// UseCase biases suggestion priority toward a downstream consumer
type UseCase string

const (
	UseCaseGeneral   UseCase = "general"
	UseCaseML        UseCase = "ml"
	UseCaseAnalytics UseCase = "analytics"
	UseCaseExport    UseCase = "export"
)

// ParseUseCase validates a use-case tag. An unknown tag is a
// configuration error and fails before any detector runs.
func ParseUseCase(s string) (UseCase, error) {
	switch UseCase(s) {
	case UseCaseGeneral, UseCaseML, UseCaseAnalytics, UseCaseExport:
		return UseCase(s), nil
	default:
		return "", fmt.Errorf("invalid use case %q, must be one of: general, ml, analytics, export", s)
	}
}

// Params holds transformer parameters as an open key/value map
type Params map[string]any

// StringSlice returns a []string parameter, tolerating []any payloads
// that arrive via JSON decoding.
func (p Params) StringSlice(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// String returns a string parameter or the given default
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Float returns a float parameter or the given default
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}

// Suggestion represents one proposed fix derived from a Finding.
// IDs are assigned in emission order before sorting and stay stable for
// the lifetime of one analysis session, so a suggestion can be addressed
// by id even after filtering.
type Suggestion struct {
	ID int `json:"id" yaml:"id"`

	// Finding is the originating finding
	Finding Finding `json:"finding" yaml:"finding"`

	// Action is a short human-readable description of the fix
	Action string `json:"action" yaml:"action"`

	// Transformer is the transformer kind to invoke
	Transformer string `json:"transformer" yaml:"transformer"`

	// Params are the parameters for the transformer
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`

	// Priority is the finding severity, possibly adjusted by use-case
	// weighting at creation time. Never mutated afterwards.
	Priority Severity `json:"priority" yaml:"priority"`

	Impact    string `json:"impact" yaml:"impact"`
	Rationale string `json:"rationale" yaml:"rationale"`
}

// TransformationResult records the effect of applying one suggestion.
// The ordered set of these is the audit trail for a cleaning run.
type TransformationResult struct {
	Transformer     string   `json:"transformer" yaml:"transformer"`
	Params          Params   `json:"params,omitempty" yaml:"params,omitempty"`
	RowsAffected    int      `json:"rows_affected" yaml:"rows_affected"`
	ColumnsAffected []string `json:"columns_affected" yaml:"columns_affected"`
}

// QualityScore computes a 0-100 data quality score from findings,
// weighting each penalty by severity and confidence.
func QualityScore(profile *DatasetProfile, findings []Finding) int {
	if profile == nil || profile.RowCount == 0 {
		return 100
	}
	score := 100.0
	for _, f := range findings {
		var penalty float64
		switch f.Severity {
		case SeverityHigh:
			penalty = 10.0
		case SeverityMedium:
			penalty = 5.0
		default:
			penalty = 2.0
		}
		score -= penalty * f.Confidence
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(score)
}
