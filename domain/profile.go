package domain

// NumericSummary holds summary statistics for a numeric column
type NumericSummary struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Std    float64 `json:"std" yaml:"std"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Q3     float64 `json:"q3" yaml:"q3"`
}

// ColumnProfile holds per-column statistics gathered in one profiling pass.
// Immutable after creation.
type ColumnProfile struct {
	// Name is the column name, unique within a dataset
	Name string `json:"name" yaml:"name"`

	// DType is the dominant detected type: string, numeric, boolean, date
	DType string `json:"dtype" yaml:"dtype"`

	NullCount int     `json:"null_count" yaml:"null_count"`
	NullRatio float64 `json:"null_ratio" yaml:"null_ratio"`

	DistinctCount int     `json:"distinct_count" yaml:"distinct_count"`
	DistinctRatio float64 `json:"distinct_ratio" yaml:"distinct_ratio"`

	// SampleValues is a bounded sample of non-null values
	SampleValues []string `json:"sample_values,omitempty" yaml:"sample_values,omitempty"`

	// Numeric is present only for columns that parse as numeric
	Numeric *NumericSummary `json:"numeric,omitempty" yaml:"numeric,omitempty"`

	// Patterns maps a detected pattern tag (date, boolean, numeric, email)
	// to the ratio of non-null values matching it
	Patterns map[string]float64 `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// DatasetProfile holds dataset-level statistics plus one ColumnProfile
// per column. It owns its ColumnProfiles exclusively.
type DatasetProfile struct {
	RowCount          int   `json:"row_count" yaml:"row_count"`
	ColumnCount       int   `json:"column_count" yaml:"column_count"`
	MemoryBytes       int64 `json:"memory_bytes" yaml:"memory_bytes"`
	DuplicateRowCount int   `json:"duplicate_row_count" yaml:"duplicate_row_count"`

	// Columns maps column name to its profile
	Columns map[string]ColumnProfile `json:"columns" yaml:"columns"`

	// Sampled records whether the data was sampled before profiling
	Sampled    bool `json:"sampled" yaml:"sampled"`
	SampleSize int  `json:"sample_size,omitempty" yaml:"sample_size,omitempty"`
}
