package wfc

import (
	"math/bits"

	"github.com/kelindar/bitmap"
)

// PatchSet is a dense bitset over patch ids. It backs both a cell's
// candidate set and a patch's per-direction allowed-neighbour set.
//
// Storage is a kelindar/bitmap.Bitmap (a plain []uint64 word slice); on
// top of it this type adds the lazy-recomputed popcount and the
// atomic reset-to-singleton operation the solver's hot path needs on
// every propagation step, the same shape as the bitfield32 this is
// grounded on.
type PatchSet struct {
	bits    bitmap.Bitmap
	count   int
	countOK bool
}

// NewPatchSet returns an empty PatchSet pre-grown to hold ids in
// [0, capacity).
func NewPatchSet(capacity int) PatchSet {
	s := PatchSet{countOK: true}
	if capacity > 0 {
		s.bits.Grow(uint32(capacity - 1))
	}
	return s
}

// growTo ensures the underlying word slice has room for bit i.
func (s *PatchSet) growTo(i int) {
	if i/64 >= len(s.bits) {
		s.bits.Grow(uint32(i))
	}
}

// Set marks patch id i as admissible. i must be a valid, non-negative
// patch id; out-of-range ids are a programmer error.
func (s *PatchSet) Set(i int) {
	s.bits.Set(uint32(i))
	s.countOK = false
}

// Clear marks patch id i as inadmissible.
func (s *PatchSet) Clear(i int) {
	word := i / 64
	if word < len(s.bits) {
		s.bits[word] &^= 1 << uint(i%64)
		s.countOK = false
	}
}

// SetTo atomically resets the set to the singleton {i}.
func (s *PatchSet) SetTo(i int) {
	for idx := range s.bits {
		s.bits[idx] = 0
	}
	s.growTo(i)
	s.bits[i/64] = 1 << uint(i%64)
	s.count = 1
	s.countOK = true
}

// Contains reports whether patch id i is currently admissible.
func (s *PatchSet) Contains(i int) bool {
	return s.bits.Contains(uint32(i))
}

// Count returns the cardinality of the set, recomputing the cached
// popcount lazily if it was invalidated by a Set/Clear/And/Or since the
// last call.
func (s *PatchSet) Count() int {
	if !s.countOK {
		n := 0
		for _, w := range s.bits {
			n += bits.OnesCount64(w)
		}
		s.count = n
		s.countOK = true
	}
	return s.count
}

// Empty reports whether the set has no admissible patches left — the
// contradiction condition.
func (s *PatchSet) Empty() bool {
	return s.Count() == 0
}

// Equals reports word-wise equality. Missing trailing words on either
// side are treated as zero, so sets grown to different capacities but
// holding the same bits still compare equal.
func (s *PatchSet) Equals(o *PatchSet) bool {
	n := len(s.bits)
	if len(o.bits) > n {
		n = len(o.bits)
	}
	for i := 0; i < n; i++ {
		var a, b uint64
		if i < len(s.bits) {
			a = s.bits[i]
		}
		if i < len(o.bits) {
			b = o.bits[i]
		}
		if a != b {
			return false
		}
	}
	return true
}

// AndInto intersects the receiver with o in place.
func (s *PatchSet) AndInto(o *PatchSet) {
	for i := range s.bits {
		if i < len(o.bits) {
			s.bits[i] &= o.bits[i]
		} else {
			s.bits[i] = 0
		}
	}
	s.countOK = false
}

// OrInto unions o into the receiver in place.
func (s *PatchSet) OrInto(o *PatchSet) {
	if len(o.bits) > 0 {
		s.growTo((len(o.bits) * 64) - 1)
	}
	for i := range o.bits {
		s.bits[i] |= o.bits[i]
	}
	s.countOK = false
}

// Reset clears every bit, leaving the set empty but keeping its
// allocated capacity.
func (s *PatchSet) Reset() {
	for i := range s.bits {
		s.bits[i] = 0
	}
	s.count = 0
	s.countOK = true
}

// CopyFrom overwrites the receiver's bits with a copy of o's.
func (s *PatchSet) CopyFrom(o *PatchSet) {
	if len(o.bits) > len(s.bits) {
		s.growTo((len(o.bits) * 64) - 1)
	}
	for i := range s.bits {
		if i < len(o.bits) {
			s.bits[i] = o.bits[i]
		} else {
			s.bits[i] = 0
		}
	}
	s.count = o.count
	s.countOK = o.countOK
}

// Iter yields admissible patch ids in ascending order. Per the spec it
// stops once Count() ids have been produced, which also bounds iteration
// when the caller mutates capacity mid-loop via a shared PatchSet.
func (s *PatchSet) Iter(yield func(int) bool) {
	remaining := s.Count()
	for wi, w := range s.bits {
		if remaining <= 0 {
			return
		}
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			idx := wi*64 + tz
			if !yield(idx) {
				return
			}
			remaining--
			if remaining <= 0 {
				return
			}
			w &= w - 1
		}
	}
}
