// Package poolcore ties the ingestion, hashing, schema, target, border
// and permutation packages together behind a single entry point, the
// way FeatureBaseDB-featurebase's root pilosa package wires Holder,
// Cluster and translation into the handful of calls its callers
// actually need.
package poolcore

import (
	"github.com/go-gbdt/poolcore/borders"
	"github.com/go-gbdt/poolcore/ingest"
	"github.com/go-gbdt/poolcore/logger"
	"github.com/go-gbdt/poolcore/permute"
	"github.com/go-gbdt/poolcore/pool"
)

// Re-exported so callers of this package need not also import
// github.com/go-gbdt/poolcore/pool for the everyday types.
type (
	Pool           = pool.Pool
	Document       = pool.Document
	Pair           = pool.Pair
	Column         = pool.Column
	Options        = pool.Options
	Option         = pool.Option
	NanMode        = pool.NanMode
	FeatureBorders = borders.FeatureBorders
)

// Option constructors, re-exported for the same reason.
var (
	OptThreadCount         = pool.OptThreadCount
	OptFieldDelimiter      = pool.OptFieldDelimiter
	OptHasHeader           = pool.OptHasHeader
	OptClassNames          = pool.OptClassNames
	OptBlockSize           = pool.OptBlockSize
	OptBorderCount         = pool.OptBorderCount
	OptBorderSelectionType = pool.OptBorderSelectionType
	OptNanMode             = pool.OptNanMode
	OptUsedRAMLimit        = pool.OptUsedRAMLimit
	OptVerbose             = pool.OptVerbose
	OptLogger              = pool.OptLogger
	OptIgnoredFeatures     = pool.OptIgnoredFeatures
	NewOptions             = pool.NewOptions
)

const (
	NanForbidden = pool.NanForbidden
	NanMin       = pool.NanMin
	NanMax       = pool.NanMax
)

// LoadPool reads cdFile and poolFile (and, if non-empty, pairsFile)
// into a fresh *Pool under opts. This is the one-call path most
// callers want; the ingest package's Builder/BlockReader/BlockParser
// pieces remain available individually for callers that need a
// non-default Builder (a streaming sink, a validating sink).
func LoadPool(cdFile, poolFile, pairsFile string, opts Options) (*Pool, error) {
	p := &Pool{}
	b := ingest.NewDefaultBuilder(p, opts.ResolveLogger())
	if err := ingest.Load(cdFile, poolFile, pairsFile, b, opts); err != nil {
		return nil, err
	}
	return p, nil
}

// GenerateBorders computes per-feature split thresholds for p's numeric
// features under opts, using splitter to pick border values within
// each batch. Pass nil to use the package default (EquidistantSplitter).
func GenerateBorders(p *Pool, splitter borders.BestSplitter, opts Options) ([]FeatureBorders, error) {
	if splitter == nil {
		splitter = borders.EquidistantSplitter{}
	}
	return borders.Generate(p, splitter, opts)
}

// Shuffle reorders p's documents in place according to perm, a
// permutation of [0, len(p.Docs)), rewriting pair ids to track their
// documents' new positions.
func Shuffle(p *Pool, perm []int) error {
	return permute.Apply(p, perm)
}

// InvertPermutation returns the inverse of perm.
func InvertPermutation(perm []int) []int {
	return permute.Invert(perm)
}

// NopLogger discards every message; NewOptions defaults Options.Logger
// to it.
var NopLogger = logger.NopLogger
