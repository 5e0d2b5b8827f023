// Package ingest implements the pool-ingestion pipeline: the pool
// builder sink (C3), the double-buffered block reader (C4), the
// parallel block parser (C5), and the pairs loader (C6).
//
// Grounded on original_source/catboost/libs/data/load_data.cpp's
// TPoolBuilder/TPoolReader, re-expressed with a capability-contract
// Builder interface in place of the original's virtual base class
// (spec.md §9: "re-architect as a capability contract"), and with
// goroutines/channels/errgroup standing in for the original's local
// executor, the way FeatureBaseDB-featurebase's idk/csv.Source and
// batch/batch.go pipeline rows through channels and errgroups.
package ingest

import (
	"github.com/pkg/errors"

	"github.com/go-gbdt/poolcore/cathash"
	"github.com/go-gbdt/poolcore/logger"
	"github.com/go-gbdt/poolcore/pool"
)

// Builder is the typed row-assembly sink (spec.md C3). The pool
// ingestion pipeline accepts any value exposing this capability
// contract instead of depending on a single concrete implementation --
// the builder borrows the pool it writes into for its lifetime; the
// caller retains ownership. Alternative sinks (a streaming sink, a
// validating sink) compose by delegation around a Builder.
type Builder interface {
	Start(meta pool.PoolMetaInfo)
	StartNextBlock(n int)
	AddCatFeature(localIdx, factorIdx int, value string)
	AddFloatFeature(localIdx, factorIdx int, value float32)
	AddTarget(localIdx int, value float32)
	AddWeight(localIdx int, value float32)
	AddBaseline(localIdx, offset int, value float64)
	AddDocId(localIdx int, value string)
	AddQueryId(localIdx int, value string)
	SetFeatureIds(ids []string) error
	SetPairs(pairs []pool.Pair)
	GetDocCount() int
	Finish()
}

// DefaultBuilder is the Builder implementation that owns a *pool.Pool.
// It is the same shape as TPoolBuilder, with the 256-shard categorical
// hash table (cathash.Table) replacing the original's raw mutex-guarded
// array.
type DefaultBuilder struct {
	pool          *pool.Pool
	log           logger.Logger
	hashes        *cathash.Table
	cursor        int
	factorCount   int
	baselineCount int
}

// NewDefaultBuilder returns a Builder that fills p. p is zeroed by the
// first Start call.
func NewDefaultBuilder(p *pool.Pool, log logger.Logger) *DefaultBuilder {
	if log == nil {
		log = logger.NopLogger
	}
	return &DefaultBuilder{pool: p, log: log, hashes: cathash.New()}
}

func (b *DefaultBuilder) Start(meta pool.PoolMetaInfo) {
	b.pool.Docs = nil
	b.pool.Pairs = nil
	b.pool.CatFeaturesHashToString = nil
	b.pool.FeatureId = nil
	b.factorCount = meta.FactorCount
	b.baselineCount = meta.BaselineCount

	b.pool.CatFeatures = make(map[int]struct{}, len(meta.CatFeatureIds))
	for _, idx := range meta.CatFeatureIds {
		b.pool.CatFeatures[idx] = struct{}{}
	}

	if meta.HasQueryIds {
		b.log.Warnf("query ids are accepted and ignored; query-aware learning-to-rank is out of scope")
	}
}

func (b *DefaultBuilder) StartNextBlock(n int) {
	b.cursor = len(b.pool.Docs)
	b.pool.Docs = append(b.pool.Docs, make([]pool.Document, n)...)
	for i := b.cursor; i < len(b.pool.Docs); i++ {
		b.pool.Docs[i].Factors = make([]float32, b.factorCount)
		b.pool.Docs[i].Baseline = make([]float64, b.baselineCount)
		b.pool.Docs[i].Weight = 1.0
	}
}

func (b *DefaultBuilder) line(localIdx int) *pool.Document {
	return &b.pool.Docs[b.cursor+localIdx]
}

func (b *DefaultBuilder) AddCatFeature(localIdx, factorIdx int, value string) {
	h := cathash.Hash(value)
	b.hashes.InsertIfAbsent(h, value)
	b.AddFloatFeature(localIdx, factorIdx, cathash.ToFloat(h))
}

func (b *DefaultBuilder) AddFloatFeature(localIdx, factorIdx int, value float32) {
	b.line(localIdx).Factors[factorIdx] = value
}

func (b *DefaultBuilder) AddTarget(localIdx int, value float32) { b.line(localIdx).Target = value }
func (b *DefaultBuilder) AddWeight(localIdx int, value float32) { b.line(localIdx).Weight = value }

func (b *DefaultBuilder) AddBaseline(localIdx, offset int, value float64) {
	b.line(localIdx).Baseline[offset] = value
}

func (b *DefaultBuilder) AddDocId(localIdx int, value string) { b.line(localIdx).Id = value }

// AddQueryId accepts and discards the query id (spec.md §4.3).
func (b *DefaultBuilder) AddQueryId(localIdx int, value string) {}

func (b *DefaultBuilder) SetFeatureIds(ids []string) error {
	if len(ids) != b.factorCount {
		return errors.Errorf("feature ids size %d should be equal to factor count %d", len(ids), b.factorCount)
	}
	b.pool.FeatureId = ids
	return nil
}

func (b *DefaultBuilder) SetPairs(pairs []pool.Pair) { b.pool.Pairs = pairs }

func (b *DefaultBuilder) GetDocCount() int { return len(b.pool.Docs) }

func (b *DefaultBuilder) Finish() {
	if len(b.pool.Docs) == 0 {
		b.log.Errorf("no doc info loaded")
		return
	}
	b.pool.CatFeaturesHashToString = b.hashes.Drain(b.pool.CatFeaturesHashToString)
	b.log.Infof("doc info sizes: %d docs, %d factors", len(b.pool.Docs), b.factorCount)
}
