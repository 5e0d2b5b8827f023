package borders

import (
	"github.com/go-gbdt/poolcore/pool"
)

// BestSplitter selects up to borderCount threshold candidates from a
// sorted, non-NaN sample of a numeric feature. Its mathematical policy
// is opaque to the rest of the engine (spec.md §1, §4.8): callers
// provide whichever quantization algorithm they need (greedy log-sum,
// median, uniform-and-quantiles, ...); this package only orders and
// NaN-adjusts whatever thresholds come back.
type BestSplitter interface {
	BestSplit(sorted []float32, borderCount int, selection pool.BorderSelectionType) []float32
}

// EquidistantSplitter is a deterministic placeholder BestSplitter: it
// picks up to borderCount thresholds spaced at equal rank intervals
// through the sorted sample (the midpoint between consecutive sampled
// values). It ignores the BorderSelectionType, since the true
// greedy/mean-split quantization families are the training algorithm's
// concern and explicitly out of scope here (spec.md §1).
type EquidistantSplitter struct{}

func (EquidistantSplitter) BestSplit(sorted []float32, borderCount int, _ pool.BorderSelectionType) []float32 {
	n := len(sorted)
	if n < 2 || borderCount < 1 {
		return nil
	}
	dedup := dedupSorted(sorted)
	if len(dedup) < 2 {
		return nil
	}
	k := borderCount
	if k > len(dedup)-1 {
		k = len(dedup) - 1
	}
	out := make([]float32, 0, k)
	for i := 1; i <= k; i++ {
		rank := i * (len(dedup) - 1) / (k + 1)
		mid := (dedup[rank] + dedup[rank+1]) / 2
		if len(out) == 0 || out[len(out)-1] != mid {
			out = append(out, mid)
		}
	}
	return out
}

func dedupSorted(sorted []float32) []float32 {
	out := make([]float32, 0, len(sorted))
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
