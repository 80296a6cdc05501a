package domain

// Severity represents how urgent a finding is
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank returns the numeric weight of a severity, used for ordering.
// Unknown severities rank lowest.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// IssueType identifies the kind of data quality issue a detector found.
// The set is closed; adding a detector means adding a constant here and
// a suggestion template alongside it.
type IssueType string

const (
	IssueMissingValues          IssueType = "missing_values"
	IssueEmptyStrings           IssueType = "empty_strings"
	IssueDuplicateRows          IssueType = "duplicate_rows"
	IssueInconsistentCase       IssueType = "inconsistent_case"
	IssueInconsistentDateFormat IssueType = "inconsistent_date_format"
	IssueWhitespacePadding      IssueType = "whitespace_padding"
	IssueOutliers               IssueType = "outliers"
	IssueNumericAsString        IssueType = "numeric_as_string"
	IssueBooleanAsString        IssueType = "boolean_as_string"
	IssueSimilarColumns         IssueType = "similar_columns"
)

// SimilarityMethod tags which signal produced a similar_columns finding
type SimilarityMethod string

const (
	SimilarityByName  SimilarityMethod = "name"
	SimilarityByValue SimilarityMethod = "value"
)

// Finding represents a single detected data quality issue.
// Findings are value objects: produced by detectors, consumed read-only
// by the suggestion pipeline and reporting.
type Finding struct {
	// Detector is the name of the detector that produced this finding
	Detector string `json:"detector" yaml:"detector"`

	// IssueType is the kind of issue from the closed enumeration
	IssueType IssueType `json:"issue_type" yaml:"issue_type"`

	// Severity is the assessed urgency
	Severity Severity `json:"severity" yaml:"severity"`

	// Columns are the column names this finding implicates.
	// A similarity finding implicates exactly two.
	Columns []string `json:"columns" yaml:"columns"`

	// Rows are affected row indices, capped by the detector (optional)
	Rows []int `json:"rows,omitempty" yaml:"rows,omitempty"`

	// Details carries issue-specific payload (similarity score, method, counts)
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`

	// Message is a human-readable description
	Message string `json:"message" yaml:"message"`

	// Confidence is the detector's confidence in [0, 1]
	Confidence float64 `json:"confidence" yaml:"confidence"`
}
