package pipeline

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Dataset aggregates (vector, label) pairs in insertion order, discarding
// exact duplicates on insertion: a pair equal in every value position and in
// label to an existing entry is dropped silently. Repeated identical
// observations (the same article under two filenames, say) must not bias
// downstream class balancing. Lookup is a fingerprint index, so insertion
// stays linear while keeping exact-equality semantics and first-occurrence
// order.
type Dataset struct {
	Values [][]float64
	Labels []string

	index map[uint64][]int // fingerprint -> candidate entry indices
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{index: make(map[uint64][]int)}
}

// Add appends the pair unless an exactly equal one is already stored.
// It reports whether the pair was kept.
func (d *Dataset) Add(values []float64, label string) bool {
	fp := fingerprint(values, label)
	for _, i := range d.index[fp] {
		if d.Labels[i] == label && equalValues(d.Values[i], values) {
			return false
		}
	}
	d.index[fp] = append(d.index[fp], len(d.Values))
	d.Values = append(d.Values, values)
	d.Labels = append(d.Labels, label)
	return true
}

// Len returns the number of stored entries.
func (d *Dataset) Len() int {
	return len(d.Values)
}

// fingerprint hashes the exact bit patterns of the vector plus the label.
func fingerprint(values []float64, label string) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	h.Write([]byte(label))
	return h.Sum64()
}

func equalValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
