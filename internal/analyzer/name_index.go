package analyzer

import (
	"sort"
	"strings"
)

// DefaultNGramSize is the n-gram width for name blocking. Bigrams keep
// recall high for short column names: a single transposed pair like
// "email"/"emial" still shares a gram, which trigrams would miss.
const DefaultNGramSize = 2

// NameIndex is an inverted index from character n-grams of lower-cased
// column names to the columns containing them. Candidate pairs are
// columns sharing at least one gram, pruning all-pairs comparison to
// pairs with some lexical overlap.
type NameIndex struct {
	n       int
	buckets map[string][]string
	added   map[string]struct{}
}

// NewNameIndex creates an index with the given n-gram size. Sizes below
// 1 fall back to DefaultNGramSize.
func NewNameIndex(n int) *NameIndex {
	if n < 1 {
		n = DefaultNGramSize
	}
	return &NameIndex{
		n:       n,
		buckets: make(map[string][]string),
		added:   make(map[string]struct{}),
	}
}

// Add indexes a column name. Adding the same name twice is a no-op.
func (idx *NameIndex) Add(name string) {
	if _, exists := idx.added[name]; exists {
		return
	}
	idx.added[name] = struct{}{}
	for gram := range ngrams(strings.ToLower(name), idx.n) {
		idx.buckets[gram] = append(idx.buckets[gram], name)
	}
}

// CandidatePairs returns every unordered pair of indexed names sharing
// at least one n-gram, sorted by (first, second) with first < second.
func (idx *NameIndex) CandidatePairs() [][2]string {
	seen := make(map[[2]string]struct{})
	for _, names := range idx.buckets {
		if len(names) < 2 {
			continue
		}
		sorted := make([]string, len(names))
		copy(sorted, names)
		sort.Strings(sorted)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				seen[[2]string{sorted[i], sorted[j]}] = struct{}{}
			}
		}
	}

	pairs := make([][2]string, 0, len(seen))
	for p := range seen {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// ngrams yields the character n-grams of s. Strings shorter than n
// produce themselves as a single gram.
func ngrams(s string, n int) map[string]struct{} {
	runes := []rune(s)
	grams := make(map[string]struct{})
	if len(runes) <= n {
		grams[s] = struct{}{}
		return grams
	}
	for i := 0; i+n <= len(runes); i++ {
		grams[string(runes[i:i+n])] = struct{}{}
	}
	return grams
}
