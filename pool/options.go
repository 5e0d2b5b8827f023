package pool

import (
	"os"

	"github.com/go-gbdt/poolcore/logger"
)

// NanMode controls how border generation treats NaN values in a
// numeric feature.
type NanMode int

const (
	NanForbidden NanMode = iota
	NanMin
	NanMax
)

func (m NanMode) String() string {
	switch m {
	case NanForbidden:
		return "Forbidden"
	case NanMin:
		return "Min"
	case NanMax:
		return "Max"
	default:
		return "Unknown"
	}
}

// BorderSelectionType is forwarded opaquely to a BestSplitter; its
// mathematical policy is not specified here (§1: out of scope).
type BorderSelectionType int

const (
	BorderSelectionMedian BorderSelectionType = iota
	BorderSelectionUniformAndQuantiles
	BorderSelectionGreedyLogSum
	BorderSelectionMaxLogSum
	BorderSelectionMinEntropy
)

const (
	DefaultBlockSize      = 10000
	DefaultFieldDelimiter = '\t'
	DefaultBorderCount    = 32
)

// Options collects every engine-wide knob named in §6 of the
// specification, set via the functional-options pattern (grounded on
// FeatureBaseDB-featurebase/client's OptIndexKeys/OptFieldType* family).
type Options struct {
	ThreadCount         int
	FieldDelimiter      byte
	HasHeader           bool
	ClassNames          []string
	BlockSize           int
	BorderCount         int
	BorderSelectionType BorderSelectionType
	NanMode             NanMode
	UsedRAMLimit        int64
	Verbose             bool
	Logger              logger.Logger

	// IgnoredFeatures is a supplemental knob (SPEC_FULL.md §C.1, grounded
	// on original_source/catboost's ignored-features support): factor
	// indexes that are parsed for column alignment but never hashed,
	// stored, or borderized.
	IgnoredFeatures map[int]struct{}
}

// Option configures Options.
type Option func(*Options)

// NewOptions builds an Options with the package defaults, then applies
// opts in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		ThreadCount:         1,
		FieldDelimiter:      DefaultFieldDelimiter,
		HasHeader:           false,
		BlockSize:           DefaultBlockSize,
		BorderCount:         DefaultBorderCount,
		BorderSelectionType: BorderSelectionGreedyLogSum,
		NanMode:             NanForbidden,
		UsedRAMLimit:        1 << 30, // 1 GiB
		Logger:              logger.NopLogger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func OptThreadCount(n int) Option {
	return func(o *Options) { o.ThreadCount = n }
}

func OptFieldDelimiter(c byte) Option {
	return func(o *Options) { o.FieldDelimiter = c }
}

func OptHasHeader(v bool) Option {
	return func(o *Options) { o.HasHeader = v }
}

func OptClassNames(names ...string) Option {
	return func(o *Options) { o.ClassNames = names }
}

func OptBlockSize(n int) Option {
	return func(o *Options) { o.BlockSize = n }
}

func OptBorderCount(n int) Option {
	return func(o *Options) { o.BorderCount = n }
}

func OptBorderSelectionType(t BorderSelectionType) Option {
	return func(o *Options) { o.BorderSelectionType = t }
}

func OptNanMode(m NanMode) Option {
	return func(o *Options) { o.NanMode = m }
}

func OptUsedRAMLimit(bytes int64) Option {
	return func(o *Options) { o.UsedRAMLimit = bytes }
}

func OptVerbose(v bool) Option {
	return func(o *Options) { o.Verbose = v }
}

func OptLogger(l logger.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func OptIgnoredFeatures(idx ...int) Option {
	return func(o *Options) {
		if o.IgnoredFeatures == nil {
			o.IgnoredFeatures = make(map[int]struct{}, len(idx))
		}
		for _, i := range idx {
			o.IgnoredFeatures[i] = struct{}{}
		}
	}
}

// ResolveLogger returns the Logger the pipeline should actually use: a
// Logger other than NopLogger set via OptLogger is returned as-is;
// otherwise Verbose selects a debug-level standard logger on stderr, and
// without Verbose the configured Logger (NopLogger by default) is
// returned.
func (o Options) ResolveLogger() logger.Logger {
	if o.Logger != nil && o.Logger != logger.NopLogger {
		return o.Logger
	}
	if o.Verbose {
		return logger.NewVerboseLogger(os.Stderr)
	}
	if o.Logger != nil {
		return o.Logger
	}
	return logger.NopLogger
}
