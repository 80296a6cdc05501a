package analyzer

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
)

// Default LSH banding parameters. With 128-hash signatures, 32 bands of
// 4 rows give a steep probability curve around 0.7-0.8 similarity.
const (
	DefaultLSHBands = 32
	DefaultLSHRows  = 4
)

// LSHIndex buckets MinHash signatures by banded locality-sensitive
// hashing so that only columns landing in the same band need full
// similarity scoring. Not safe for concurrent mutation: all Add calls
// must complete before FindCandidates is used.
type LSHIndex struct {
	bands int
	rows  int

	buckets    map[uint64][]string
	signatures map[string]*MinHashSignature
	order      []string
}

// NewLSHIndex creates an index with the given banding parameters.
// Invalid values fall back to the defaults.
func NewLSHIndex(bands, rows int) *LSHIndex {
	if bands <= 0 {
		bands = DefaultLSHBands
	}
	if rows <= 0 {
		rows = DefaultLSHRows
	}
	return &LSHIndex{
		bands:      bands,
		rows:       rows,
		buckets:    make(map[uint64][]string),
		signatures: make(map[string]*MinHashSignature),
	}
}

// Bands returns the number of bands
func (idx *LSHIndex) Bands() int {
	return idx.bands
}

// Rows returns the rows per band
func (idx *LSHIndex) Rows() int {
	return idx.rows
}

// Size returns the number of indexed columns
func (idx *LSHIndex) Size() int {
	return len(idx.signatures)
}

// Add indexes a column signature under the given id. Adding the same id
// twice is a no-op.
func (idx *LSHIndex) Add(id string, sig *MinHashSignature) error {
	if id == "" {
		return fmt.Errorf("empty column id")
	}
	if sig == nil || len(sig.Signatures()) == 0 {
		return fmt.Errorf("column %q: empty signature", id)
	}
	if _, exists := idx.signatures[id]; exists {
		return nil
	}
	idx.signatures[id] = sig
	idx.order = append(idx.order, id)

	for _, key := range idx.bandKeys(sig) {
		idx.buckets[key] = append(idx.buckets[key], id)
	}
	return nil
}

// GetSignature returns the signature stored for id, or nil
func (idx *LSHIndex) GetSignature(id string) *MinHashSignature {
	return idx.signatures[id]
}

// FindCandidates returns the ids of all indexed columns sharing at
// least one band bucket with the given signature, sorted for
// deterministic iteration. The result may include the query column
// itself if it was indexed.
func (idx *LSHIndex) FindCandidates(sig *MinHashSignature) []string {
	if sig == nil || len(sig.Signatures()) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, key := range idx.bandKeys(sig) {
		for _, id := range idx.buckets[key] {
			seen[id] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	candidates := make([]string, 0, len(seen))
	for id := range seen {
		candidates = append(candidates, id)
	}
	sort.Strings(candidates)
	return candidates
}

// bandKeys hashes each band of the signature into a bucket key.
// The band index is mixed into the key so identical row values in
// different bands land in different buckets.
func (idx *LSHIndex) bandKeys(sig *MinHashSignature) []uint64 {
	sigs := sig.Signatures()
	bands := idx.bands
	if max := len(sigs) / idx.rows; bands > max {
		bands = max
	}

	keys := make([]uint64, 0, bands)
	var buf [8]byte
	for b := 0; b < bands; b++ {
		h := fnv.New64a()
		binary.BigEndian.PutUint64(buf[:], uint64(b))
		_, _ = h.Write(buf[:])
		for r := 0; r < idx.rows; r++ {
			binary.BigEndian.PutUint64(buf[:], sigs[b*idx.rows+r])
			_, _ = h.Write(buf[:])
		}
		keys = append(keys, h.Sum64())
	}
	return keys
}
