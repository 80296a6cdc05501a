package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// minFormatValues is the minimum number of non-null values before the
// format checks run; tiny columns do not give a meaningful signal
const minFormatValues = 5

// minDateRatio is the share of values that must look like dates before
// a column is treated as a date column at all
const minDateRatio = 0.6

// datePatterns maps a format label to its recognizer. Labels appear in
// finding details so the report can say which formats are mixed.
var datePatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"YYYY-MM-DD", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
	{"YYYY/MM/DD", regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)},
	{"DD/MM/YYYY", regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)},
	{"DD-MM-YYYY", regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`)},
	{"DD.MM.YYYY", regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)},
	{"Month D, YYYY", regexp.MustCompile(`^[A-Za-z]{3,9} \d{1,2}, \d{4}$`)},
}

// FormatDetector reports inconsistent value formatting within a column:
// mixed letter case, mixed date formats, and leading or trailing
// whitespace. Numeric columns are skipped.
type FormatDetector struct{}

// NewFormatDetector creates a format-consistency detector
func NewFormatDetector() *FormatDetector {
	return &FormatDetector{}
}

// Name returns the detector name
func (d *FormatDetector) Name() string {
	return "formats"
}

// Description returns a human-readable description
func (d *FormatDetector) Description() string {
	return "Detects inconsistent letter case, mixed date formats, and whitespace padding"
}

// Detect runs all three format checks per column
func (d *FormatDetector) Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error) {
	var findings []domain.Finding
	for _, name := range sortedColumnNames(profile) {
		cp := profile.Columns[name]
		if cp.DType == "numeric" {
			continue
		}
		col, ok := ds.Column(name)
		if !ok {
			continue
		}
		values := col.NonNull()
		if len(values) < minFormatValues {
			continue
		}

		if f, ok := d.whitespaceFinding(name, values); ok {
			findings = append(findings, f)
		}
		if f, ok := d.caseFinding(name, values); ok {
			findings = append(findings, f)
		}
		if f, ok := d.dateFormatFinding(name, values); ok {
			findings = append(findings, f)
		}
	}
	return findings, nil, nil
}

func (d *FormatDetector) whitespaceFinding(name string, values []string) (domain.Finding, bool) {
	padded := 0
	for _, v := range values {
		if v != strings.TrimSpace(v) {
			padded++
		}
	}
	if padded == 0 {
		return domain.Finding{}, false
	}
	return domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueWhitespacePadding,
		Severity:  domain.SeverityLow,
		Columns:   []string{name},
		Details: map[string]any{
			"padded_count": padded,
		},
		Message: fmt.Sprintf("Column '%s' has %d values with leading or trailing whitespace",
			name, padded),
		Confidence: 1.0,
	}, true
}

// caseFinding matches when distinct values collapse under lowercasing,
// e.g. "USA" and "usa" in the same column
func (d *FormatDetector) caseFinding(name string, values []string) (domain.Finding, bool) {
	variants := make(map[string]map[string]struct{})
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if variants[key] == nil {
			variants[key] = make(map[string]struct{})
		}
		variants[key][trimmed] = struct{}{}
	}
	collapsed := 0
	for _, vs := range variants {
		if len(vs) > 1 {
			collapsed++
		}
	}
	if collapsed == 0 {
		return domain.Finding{}, false
	}
	return domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueInconsistentCase,
		Severity:  domain.SeverityLow,
		Columns:   []string{name},
		Details: map[string]any{
			"collapsed_groups": collapsed,
		},
		Message: fmt.Sprintf("Column '%s' has %d value(s) that differ only by letter case",
			name, collapsed),
		Confidence: 0.8,
	}, true
}

// dateFormatFinding matches when most values look like dates but more
// than one format is in use
func (d *FormatDetector) dateFormatFinding(name string, values []string) (domain.Finding, bool) {
	counts := make(map[string]int)
	matched := 0
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		for _, p := range datePatterns {
			if p.re.MatchString(trimmed) {
				counts[p.label]++
				matched++
				break
			}
		}
	}
	if matched == 0 || float64(matched)/float64(len(values)) < minDateRatio {
		return domain.Finding{}, false
	}
	if len(counts) < 2 {
		return domain.Finding{}, false
	}

	formats := make([]string, 0, len(counts))
	for label := range counts {
		formats = append(formats, label)
	}
	sort.Strings(formats)

	return domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueInconsistentDateFormat,
		Severity:  domain.SeverityMedium,
		Columns:   []string{name},
		Details: map[string]any{
			"formats": formats,
		},
		Message: fmt.Sprintf("Column '%s' mixes %d date formats: %s",
			name, len(formats), strings.Join(formats, ", ")),
		Confidence: 0.85,
	}, true
}
