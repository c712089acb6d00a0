package wfc

import "math/bits"

// RandomSource is the pseudo-random source the Solver's weighted
// sampling draws from. It is an external, interfaced-only collaborator
// per the spec: the core only ever calls Float64, and never constructs
// randomness itself beyond the DeterministicSource below, which exists
// so a solve is reproducible from a single uint32 seed without pulling
// in a stateful global generator.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// DeterministicSource is a counter-based RandomSource: each draw hashes
// an incrementing counter under the seed, so two sources built from the
// same seed produce the same draw sequence.
//
// The hash itself is the teacher's own xxhash64 white-noise mixer,
// repurposed here as a counter-keyed stream instead of a
// coordinate-keyed noise field.
type DeterministicSource struct {
	seed    uint32
	counter uint64
}

// NewDeterministicSource returns a RandomSource seeded with seed.
func NewDeterministicSource(seed uint32) *DeterministicSource {
	return &DeterministicSource{seed: seed}
}

// Float64 returns the next draw in [0, 1).
func (s *DeterministicSource) Float64() float64 {
	h := xxhash64(s.counter, uint64(s.seed))
	s.counter++
	return float64(h>>11) / float64(1<<53)
}

// xxhash64 implements an unrolled xxhash that produces the same output
// as xxh3 for a single 64-bit input. Adapted from the teacher's own
// noise.go.
func xxhash64(v, seed uint64) uint64 {
	x := v ^ (0x1cad21f72c81017c ^ 0xdb979083e96dd4de) + seed
	x ^= bits.RotateLeft64(x, 49) ^ bits.RotateLeft64(x, 24)
	x *= 0x9fb21c651e98df25
	x ^= (x >> 35) + 4
	x *= 0x9fb21c651e98df25
	x ^= (x >> 28)
	return x
}
