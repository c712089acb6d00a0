package wfc

import "math"

// computeEntropy returns the Shannon entropy of candidates under the
// patch weights in index:
//
//	H = ln(Σ w_i) - (Σ w_i·ln(w_i)) / Σ w_i
//
// Both sums are accumulated in a single pass over candidates.
func computeEntropy(candidates *PatchSet, index *PatchIndex) float64 {
	var sum, sumWLogW float64
	for id := range candidates.Iter {
		w := float64(index.Patches[id].Weight)
		sum += w
		sumWLogW += w * math.Log(w)
	}
	if sum == 0 {
		return 0
	}
	return math.Log(sum) - sumWLogW/sum
}

// weightedSample draws a patch id from candidates with probability
// proportional to its weight in index, using u drawn from rng.
func weightedSample(candidates *PatchSet, index *PatchIndex, rng RandomSource) int {
	var total float64
	ids := make([]int, 0, candidates.Count())
	for id := range candidates.Iter {
		ids = append(ids, id)
		total += float64(index.Patches[id].Weight)
	}
	if len(ids) == 0 {
		return -1
	}
	u := rng.Float64() * total

	start := 0.0
	for _, id := range ids {
		w := float64(index.Patches[id].Weight)
		end := start + w
		if u >= start && u < end {
			return id
		}
		start = end
	}
	return ids[len(ids)-1]
}
