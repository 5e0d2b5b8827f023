package ingest

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/go-gbdt/poolcore/pool"
	"github.com/go-gbdt/poolcore/schema"
	"github.com/go-gbdt/poolcore/target"
)

// nanTokens are the literal NaN spellings for a Num column (spec.md
// §4.5, §6). strconv.ParseFloat already accepts these, and "nan" in any
// other capitalisation, so this set is only consulted when it fails.
var nanTokens = map[string]bool{"nan": true, "NaN": true, "NAN": true}

// BlockParser tokenizes and dispatches one already-read block of lines
// to a Builder (spec.md C5). The block is committed to the builder as a
// whole via StartNextBlock before any line is parsed, then lines are
// parsed in parallel across an errgroup-bounded set of goroutines.
type BlockParser struct {
	Columns   schema.Columns
	Delimiter byte
	Converter *target.Converter
	Ignored   map[int]struct{}
	Workers   int
}

// ParseBlock parses lines (already stripped of trailing newlines),
// whose first line is globally at index firstRow (1-based, counting any
// header), and dispatches every field to builder.
func (bp *BlockParser) ParseBlock(builder Builder, lines []string, firstRow int) error {
	builder.StartNextBlock(len(lines))

	workers := bp.Workers
	if workers < 1 {
		workers = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			return bp.parseLine(builder, line, i, firstRow+i)
		})
	}
	return g.Wait()
}

func (bp *BlockParser) parseLine(builder Builder, line string, localIdx, row int) error {
	tokens := strings.Split(line, string(bp.Delimiter))
	if len(tokens) != len(bp.Columns) {
		return &pool.ParseError{Row: row, Expected: len(bp.Columns), Found: len(tokens)}
	}

	factorIdx := 0
	baselineIdx := 0
	for i, tok := range tokens {
		col := bp.Columns[i]
		colNum := i + 1
		switch col.Type {
		case pool.ColumnCateg:
			if _, skip := bp.Ignored[factorIdx]; !skip {
				builder.AddCatFeature(localIdx, factorIdx, tok)
			}
			factorIdx++
		case pool.ColumnNum:
			if _, skip := bp.Ignored[factorIdx]; !skip {
				v, err := parseNumToken(tok)
				if err != nil {
					return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: err.Error()}
				}
				builder.AddFloatFeature(localIdx, factorIdx, v)
			}
			factorIdx++
		case pool.ColumnTarget:
			if tok == "" {
				return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: "empty target"}
			}
			v, err := bp.Converter.Convert(tok)
			if err != nil {
				return err
			}
			builder.AddTarget(localIdx, v)
		case pool.ColumnWeight:
			if tok == "" {
				return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: "empty weight"}
			}
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: "weight is not a float"}
			}
			builder.AddWeight(localIdx, float32(v))
		case pool.ColumnBaseline:
			if tok == "" {
				return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: "empty baseline"}
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: "baseline is not a float"}
			}
			builder.AddBaseline(localIdx, baselineIdx, v)
			baselineIdx++
		case pool.ColumnDocId:
			if tok == "" {
				return &pool.ParseError{Row: row, Col: colNum, Token: tok, Reason: "empty doc id"}
			}
			builder.AddDocId(localIdx, tok)
		case pool.ColumnQueryId:
			builder.AddQueryId(localIdx, tok)
		case pool.ColumnAuxiliary:
			// ignored
		}
	}
	return nil
}

func parseNumToken(tok string) (float32, error) {
	if tok == "" {
		return 0, errParseEmptyNum
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err == nil {
		return float32(v), nil
	}
	if nanTokens[tok] {
		return float32(math.NaN()), nil
	}
	return 0, err
}

var errParseEmptyNum = errors.New("empty values not supported")
