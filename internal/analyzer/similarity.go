package analyzer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/datawash-io/datawash/domain"
	"github.com/datawash-io/datawash/internal/cache"
	"github.com/datawash-io/datawash/internal/dataset"
)

// Similarity detection defaults
const (
	// DefaultMinSimilarity is the reporting threshold for both the name
	// and value signals
	DefaultMinSimilarity = 0.8

	// DefaultMinSizeRatio is the distinct-count ratio below which a
	// candidate pair cannot reach a high Jaccard similarity and is
	// skipped without scoring
	DefaultMinSizeRatio = 0.5

	// DefaultExactThreshold is the distinct-count bound under which
	// exact Jaccard is computed from the cached value sets instead of
	// the MinHash estimate
	DefaultExactThreshold = 2000
)

// SimilarityConfig holds tuning parameters for the similarity detector
type SimilarityConfig struct {
	MinSimilarity  float64
	MinSizeRatio   float64
	NumHashes      int
	Bands          int
	Rows           int
	ExactThreshold int
	NGramSize      int
}

// DefaultSimilarityConfig returns the default configuration
func DefaultSimilarityConfig() *SimilarityConfig {
	return &SimilarityConfig{
		MinSimilarity:  DefaultMinSimilarity,
		MinSizeRatio:   DefaultMinSizeRatio,
		NumHashes:      DefaultNumHashes,
		Bands:          DefaultLSHBands,
		Rows:           DefaultLSHRows,
		ExactThreshold: DefaultExactThreshold,
		NGramSize:      DefaultNGramSize,
	}
}

// SimilarityDetector finds column pairs that are likely duplicates by
// name or by value overlap. Both signals generate candidates through
// blocking (n-gram buckets for names, LSH bands for value signatures)
// so no all-pairs comparison happens.
type SimilarityDetector struct {
	cfg    SimilarityConfig
	hasher *MinHasher
}

// NewSimilarityDetector creates a detector. A nil config uses defaults;
// zero-valued fields fall back per field.
func NewSimilarityDetector(cfg *SimilarityConfig) *SimilarityDetector {
	resolved := *DefaultSimilarityConfig()
	if cfg != nil {
		if cfg.MinSimilarity > 0 {
			resolved.MinSimilarity = cfg.MinSimilarity
		}
		if cfg.MinSizeRatio > 0 {
			resolved.MinSizeRatio = cfg.MinSizeRatio
		}
		if cfg.NumHashes > 0 {
			resolved.NumHashes = cfg.NumHashes
		}
		if cfg.Bands > 0 {
			resolved.Bands = cfg.Bands
		}
		if cfg.Rows > 0 {
			resolved.Rows = cfg.Rows
		}
		if cfg.ExactThreshold > 0 {
			resolved.ExactThreshold = cfg.ExactThreshold
		}
		if cfg.NGramSize > 0 {
			resolved.NGramSize = cfg.NGramSize
		}
	}
	return &SimilarityDetector{
		cfg:    resolved,
		hasher: NewMinHasher(resolved.NumHashes),
	}
}

// Name returns the detector name
func (d *SimilarityDetector) Name() string {
	return "similarity"
}

// Description returns a human-readable description
func (d *SimilarityDetector) Description() string {
	return "Detects similar or potentially duplicate columns by name and by value overlap"
}

// Detect runs both similarity signals. A pair may be reported by both
// methods; findings are deduplicated within a method only.
func (d *SimilarityDetector) Detect(ds *dataset.Dataset, profile *domain.DatasetProfile, c *cache.Cache) ([]domain.Finding, []string, error) {
	names := sortedColumnNames(profile)
	if len(names) < 2 {
		return nil, nil, nil
	}

	findings := d.detectByName(names)
	valueFindings, warnings := d.detectByValue(names, c)
	findings = append(findings, valueFindings...)
	return findings, warnings, nil
}

// detectByName generates candidate pairs from an n-gram inverted index
// over lower-cased names and scores them with normalized edit-distance
// similarity.
func (d *SimilarityDetector) detectByName(names []string) []domain.Finding {
	idx := NewNameIndex(d.cfg.NGramSize)
	for _, name := range names {
		idx.Add(name)
	}

	var findings []domain.Finding
	for _, pair := range idx.CandidatePairs() {
		a, b := pair[0], pair[1]
		score := NameSimilarity(strings.ToLower(a), strings.ToLower(b))
		if score >= d.cfg.MinSimilarity {
			findings = append(findings, d.finding(a, b, score, domain.SimilarityByName))
		}
	}
	return findings
}

// detectByValue buckets per-column MinHash signatures with LSH banding
// and scores surviving candidate pairs by Jaccard similarity. The index
// is fully built before any candidate scoring begins.
func (d *SimilarityDetector) detectByValue(names []string, c *cache.Cache) ([]domain.Finding, []string) {
	var warnings []string

	idx := NewLSHIndex(d.cfg.Bands, d.cfg.Rows)
	distinct := make(map[string]int, len(names))

	// Index build phase. Columns with degenerate cardinality or failed
	// signature computation are skipped, not fatal.
	for _, name := range names {
		count, err := c.DistinctCount(name)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		if count < 2 {
			continue
		}
		sig, err := d.signature(name, c)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		distinct[name] = count
		if err := idx.Add(name, sig); err != nil {
			warnings = append(warnings, fmt.Sprintf("column %q: %v", name, err))
		}
	}

	// Candidate generation: pairs sharing at least one LSH band,
	// collected and sorted before scoring so tie order is fixed.
	pairSet := make(map[[2]string]struct{})
	for name := range distinct {
		sig := idx.GetSignature(name)
		for _, cand := range idx.FindCandidates(sig) {
			if cand == name {
				continue
			}
			a, b := name, cand
			if b < a {
				a, b = b, a
			}
			pairSet[[2]string{a, b}] = struct{}{}
		}
	}
	pairs := make([][2]string, 0, len(pairSet))
	for p := range pairSet {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	var findings []domain.Finding
	for _, pair := range pairs {
		a, b := pair[0], pair[1]

		// Size filter: columns whose cardinalities differ too much
		// cannot reach a high Jaccard similarity.
		ca, cb := distinct[a], distinct[b]
		ratio := float64(min(ca, cb)) / float64(max(ca, cb))
		if ratio < d.cfg.MinSizeRatio {
			continue
		}

		score, err := d.valueSimilarity(a, b, ca, cb, c)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		if score >= d.cfg.MinSimilarity {
			findings = append(findings, d.finding(a, b, score, domain.SimilarityByValue))
		}
	}
	return findings, warnings
}

// signature returns the memoized MinHash signature over the column's
// distinct-value set
func (d *SimilarityDetector) signature(name string, c *cache.Cache) (*MinHashSignature, error) {
	v, err := c.Do(name, cache.KindSignature, func() (any, error) {
		set, err := c.ValueSet(name)
		if err != nil {
			return nil, err
		}
		features := make([]string, 0, len(set))
		for value := range set {
			features = append(features, value)
		}
		return d.hasher.ComputeSignature(features), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MinHashSignature), nil
}

// valueSimilarity computes Jaccard similarity for a candidate pair:
// exact from the cached value sets when both columns are small, MinHash
// estimate otherwise.
func (d *SimilarityDetector) valueSimilarity(a, b string, ca, cb int, c *cache.Cache) (float64, error) {
	if ca <= d.cfg.ExactThreshold && cb <= d.cfg.ExactThreshold {
		setA, err := c.ValueSet(a)
		if err != nil {
			return 0, err
		}
		setB, err := c.ValueSet(b)
		if err != nil {
			return 0, err
		}
		return exactJaccard(setA, setB), nil
	}

	sigA, err := d.signature(a, c)
	if err != nil {
		return 0, err
	}
	sigB, err := d.signature(b, c)
	if err != nil {
		return 0, err
	}
	return d.hasher.EstimateJaccardSimilarity(sigA, sigB), nil
}

func (d *SimilarityDetector) finding(a, b string, score float64, method domain.SimilarityMethod) domain.Finding {
	return domain.Finding{
		Detector:  d.Name(),
		IssueType: domain.IssueSimilarColumns,
		Severity:  domain.SeverityMedium,
		Columns:   []string{a, b},
		Details: map[string]any{
			"similarity": round3(score),
			"method":     string(method),
		},
		Message: fmt.Sprintf("Columns '%s' and '%s' appear similar (%s similarity: %.2f)",
			a, b, method, score),
		Confidence: score,
	}
}

// exactJaccard computes |A∩B| / |A∪B| over two value sets
func exactJaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	intersect := 0
	for v := range small {
		if _, ok := large[v]; ok {
			intersect++
		}
	}
	union := len(a) + len(b) - intersect
	if union == 0 {
		return 0.0
	}
	return float64(intersect) / float64(union)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
