package profiler

import (
	"regexp"
	"strings"

	"github.com/datawash-io/datawash/internal/dataset"
)

// Pattern tags attached to column profiles
const (
	PatternNumeric = "numeric"
	PatternBoolean = "boolean"
	PatternDate    = "date"
	PatternEmail   = "email"
)

var (
	dateRe  = regexp.MustCompile(`^(\d{4}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/.]\d{1,2}[-/.]\d{4}|[A-Za-z]{3,9} \d{1,2}, \d{4})$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

var booleanTokens = map[string]struct{}{
	"true": {}, "false": {},
	"yes": {}, "no": {},
	"y": {}, "n": {},
	"1": {}, "0": {},
	"t": {}, "f": {},
	"on": {}, "off": {},
}

// patternRatios returns, for each pattern tag, the fraction of values
// matching it. Tags with zero matches are omitted.
func patternRatios(values []string) map[string]float64 {
	if len(values) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if _, ok := dataset.ParseNumeric(trimmed); ok {
			counts[PatternNumeric]++
		}
		if _, ok := booleanTokens[strings.ToLower(trimmed)]; ok {
			counts[PatternBoolean]++
		}
		if dateRe.MatchString(trimmed) {
			counts[PatternDate]++
		}
		if emailRe.MatchString(trimmed) {
			counts[PatternEmail]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	ratios := make(map[string]float64, len(counts))
	for tag, n := range counts {
		ratios[tag] = float64(n) / float64(len(values))
	}
	return ratios
}

// inferDType picks the dominant detected type from pattern ratios.
// Boolean wins over numeric because the boolean token set includes the
// digits 0 and 1. Numeric requires full coverage: a column where only
// most values parse stays a string column, and the type detector
// reports the mismatch instead.
func inferDType(ratios map[string]float64) string {
	switch {
	case ratios[PatternBoolean] == 1.0:
		return "boolean"
	case ratios[PatternNumeric] == 1.0:
		return "numeric"
	case ratios[PatternDate] > 0.6:
		return "date"
	default:
		return "string"
	}
}
