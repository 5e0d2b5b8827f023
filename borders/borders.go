// Package borders implements the border generator (spec.md C8):
// per-numeric-feature parallel threshold computation with a
// memory-budgeted concurrency sizing step and a NaN-handling policy.
//
// Grounded on original_source/catboost/libs/algo/helpers.cpp's
// GenerateBorders, re-expressed with an errgroup-bounded worker pool in
// place of the original's custom local executor, the way
// FeatureBaseDB-featurebase's batch package (batch/batch.go) fans work
// out across an errgroup.
package borders

import (
	"math"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/go-gbdt/poolcore/pool"
)

// staticRSSEstimate is the conservative fallback used when the current
// platform has no RSS probe wired (see rss_other.go).
const staticRSSEstimate int64 = 64 * 1024 * 1024

// FeatureBorders is the output for one numeric feature.
type FeatureBorders struct {
	Thresholds []float32
	HasNans    bool
}

const bytes1MiB = 1024 * 1024

// Generate computes borders for every numeric (non-categorical) factor
// of p that is not in opts.IgnoredFeatures, in numeric-factor order,
// subject to opts.BorderCount, opts.BorderSelectionType, opts.NanMode
// and opts.UsedRAMLimit.
func Generate(p *pool.Pool, splitter BestSplitter, opts pool.Options) ([]FeatureBorders, error) {
	log := opts.ResolveLogger()

	numericIdx := p.NumericFeatureIndexes()
	if len(opts.IgnoredFeatures) > 0 {
		kept := numericIdx[:0]
		for _, idx := range numericIdx {
			if _, skip := opts.IgnoredFeatures[idx]; !skip {
				kept = append(kept, idx)
			}
		}
		numericIdx = kept
	}
	results := make([]FeatureBorders, len(numericIdx))
	if len(numericIdx) == 0 {
		return results, nil
	}

	n := int64(len(p.Docs))
	used := usedRAMBytes()

	// Per-feature byte estimate: spec.md §4.8's formula, naming the
	// BestSplit scratch vector's size term by term.
	const sizeofFloat = 4
	const sizeofSizeT = 8
	const sizeofDouble = 8
	bytesBestSplit := n * (sizeofFloat + int64(opts.BorderCount-1)*sizeofSizeT + 2*sizeofDouble + 2*sizeofSizeT + 2*sizeofDouble)
	bytesGenerateBorders := n * sizeofFloat
	perThread := bytesThreadStack + bytesGenerateBorders + bytesBestSplit

	if opts.UsedRAMLimit <= used {
		return nil, &pool.MemoryError{NeedMiB: (used-opts.UsedRAMLimit)/bytes1MiB + 1}
	}
	budget := (opts.UsedRAMLimit - used) / perThread
	if budget > int64(len(numericIdx)) {
		budget = int64(len(numericIdx))
	}
	if budget == 0 {
		shortfall := perThread - (opts.UsedRAMLimit - used)
		return nil, &pool.MemoryError{NeedMiB: shortfall/bytes1MiB + 1}
	}
	p_ := int(budget)

	var nanFailure atomic.Bool

	computeOne := func(idx int) error {
		featureIdx := numericIdx[idx]
		vals := make([]float32, 0, len(p.Docs))
		hasNan := false
		for _, d := range p.Docs {
			v := d.Factors[featureIdx]
			if isNaN32(v) {
				hasNan = true
			} else {
				vals = append(vals, v)
			}
		}
		sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })

		thresholds := splitter.BestSplit(vals, opts.BorderCount, opts.BorderSelectionType)
		thresholds = append([]float32(nil), thresholds...)
		sort.Slice(thresholds, func(i, j int) bool { return thresholds[i] < thresholds[j] })

		if hasNan {
			switch opts.NanMode {
			case pool.NanMin:
				thresholds = append([]float32{-math.MaxFloat32}, thresholds...)
			case pool.NanMax:
				thresholds = append(thresholds, math.MaxFloat32)
			default:
				nanFailure.Store(true)
			}
		}

		results[idx] = FeatureBorders{Thresholds: thresholds, HasNans: hasNan}
		return nil
	}

	// Batches of size p_ run under an errgroup barrier; the NaN-failure
	// flag is checked between batches, giving early termination without
	// per-feature coordination overhead (spec.md §4.8 rationale).
	for start := 0; start < len(numericIdx); start += p_ {
		end := start + p_
		if end > len(numericIdx) {
			end = len(numericIdx)
		}
		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error { return computeOne(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if nanFailure.Load() {
			return nil, &pool.NanError{Policy: opts.NanMode}
		}
	}

	log.Infof("borders for %d float features generated", len(numericIdx))
	return results, nil
}

func isNaN32(f float32) bool {
	return f != f
}

// bytesThreadStack is the constant per-worker stack allowance from
// spec.md §4.8's concurrency-sizing formula.
const bytesThreadStack int64 = 2 * bytes1MiB
