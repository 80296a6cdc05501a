package analyzer

import (
	"hash/fnv"
	"math"
)

// DefaultNumHashes is the default MinHash signature width
const DefaultNumHashes = 128

// MinHashSignature is a fixed-size fingerprint of a value set enabling
// fast Jaccard-similarity estimation
type MinHashSignature struct {
	sigs []uint64
}

// Signatures returns the raw signature values
func (s *MinHashSignature) Signatures() []uint64 {
	return s.sigs
}

// MinHasher computes MinHash signatures over string feature sets.
// Signatures are deterministic: the same feature set always produces
// the same signature, regardless of feature order or duplication.
type MinHasher struct {
	numHashes int
	seeds     []uint64
}

// NewMinHasher creates a MinHasher with the given signature width.
// Invalid widths fall back to DefaultNumHashes.
func NewMinHasher(numHashes int) *MinHasher {
	if numHashes <= 0 {
		numHashes = DefaultNumHashes
	}
	seeds := make([]uint64, numHashes)
	state := uint64(0x2545F4914F6CDD1D)
	for i := range seeds {
		state = splitmix64(state)
		seeds[i] = state
	}
	return &MinHasher{numHashes: numHashes, seeds: seeds}
}

// NumHashes returns the signature width
func (m *MinHasher) NumHashes() int {
	return m.numHashes
}

// ComputeSignature computes the MinHash signature of a feature set.
// Duplicate features are ignored.
func (m *MinHasher) ComputeSignature(features []string) *MinHashSignature {
	sigs := make([]uint64, m.numHashes)
	for i := range sigs {
		sigs[i] = math.MaxUint64
	}

	seen := make(map[string]struct{}, len(features))
	for _, f := range features {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}

		base := hash64(f)
		for i, seed := range m.seeds {
			h := splitmix64(base ^ seed)
			if h < sigs[i] {
				sigs[i] = h
			}
		}
	}
	return &MinHashSignature{sigs: sigs}
}

// EstimateJaccardSimilarity estimates the Jaccard similarity of the two
// underlying sets as the fraction of matching signature positions.
// Returns 0.0 for nil signatures.
func (m *MinHasher) EstimateJaccardSimilarity(a, b *MinHashSignature) float64 {
	if a == nil || b == nil {
		return 0.0
	}
	n := len(a.sigs)
	if len(b.sigs) < n {
		n = len(b.sigs)
	}
	if n == 0 {
		return 0.0
	}
	matches := 0
	for i := 0; i < n; i++ {
		if a.sigs[i] == b.sigs[i] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}

// hash64 hashes a string to a 64-bit value (FNV-1a)
func hash64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// splitmix64 is a fast 64-bit mixing function with good avalanche
// behavior, used to derive the per-position hash family
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
