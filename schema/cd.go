// Package schema implements the CD (column description) reader: the
// parse/validate step that classifies each physical column of a pool
// file (spec.md C1).
package schema

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-gbdt/poolcore/pool"
)

// Columns is a parsed, validated column schema: one entry per physical
// column of the pool file, in column order.
type Columns []pool.Column

// ReadCD parses a CD file: delimited pairs/triples of
// (column-index, type-name[, id]), one per line, any index not named
// defaults to Num. columnsCount is the number of physical columns in
// the pool file (e.g. from its header or first data row), used to size
// and validate the result.
func ReadCD(r io.Reader, columnsCount int) (Columns, error) {
	cols := make(Columns, columnsCount)
	for i := range cols {
		cols[i] = pool.Column{Type: pool.ColumnNum}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, &pool.SchemaError{Reason: "CD line must have at least index and type: " + line}
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, &pool.SchemaError{Reason: "bad column index " + fields[0]}
		}
		if idx < 0 || idx >= columnsCount {
			return nil, &pool.SchemaError{Reason: "column index out of range: " + fields[0]}
		}
		typeName := strings.TrimSpace(fields[1])
		ct, ok := pool.ParseColumnType(typeName)
		if !ok {
			return nil, &pool.SchemaError{Reason: "unknown column type " + typeName}
		}
		id := ""
		if len(fields) >= 3 {
			id = strings.TrimSpace(fields[2])
		}
		cols[idx] = pool.Column{Type: ct, Id: id}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading CD file")
	}
	return Validate(cols)
}

// DefaultColumns builds the implicit schema used when no CD file is
// supplied: column 0 is Target, every other column is Num.
func DefaultColumns(columnsCount int) (Columns, error) {
	cols := make(Columns, columnsCount)
	for i := range cols {
		cols[i] = pool.Column{Type: pool.ColumnNum}
	}
	if columnsCount > 0 {
		cols[0] = pool.Column{Type: pool.ColumnTarget}
	}
	return Validate(cols)
}

// Validate enforces spec.md §4.1: at most one each of
// Target/Weight/DocId/QueryId, and at least one factor column.
func Validate(cols Columns) (Columns, error) {
	var targets, weights, docIds, queryIds, factors int
	for _, c := range cols {
		switch c.Type {
		case pool.ColumnTarget:
			targets++
		case pool.ColumnWeight:
			weights++
		case pool.ColumnDocId:
			docIds++
		case pool.ColumnQueryId:
			queryIds++
		}
		if c.Type.IsFactor() {
			factors++
		}
	}
	switch {
	case targets > 1:
		return nil, &pool.SchemaError{Reason: "more than one Target column"}
	case weights > 1:
		return nil, &pool.SchemaError{Reason: "more than one Weight column"}
	case docIds > 1:
		return nil, &pool.SchemaError{Reason: "more than one DocId column"}
	case queryIds > 1:
		return nil, &pool.SchemaError{Reason: "more than one QueryId column"}
	case factors == 0:
		return nil, &pool.SchemaError{Reason: "pool must have at least one factor column"}
	}
	return cols, nil
}

// MetaInfo derives PoolMetaInfo from a validated column schema, and
// assigns each factor column its dense factor index (the running count
// of factor columns seen so far).
func MetaInfo(cols Columns) pool.PoolMetaInfo {
	var mi pool.PoolMetaInfo
	factorIdx := 0
	for _, c := range cols {
		switch c.Type {
		case pool.ColumnWeight:
			mi.HasWeights = true
		case pool.ColumnDocId:
			mi.HasDocIds = true
		case pool.ColumnQueryId:
			mi.HasQueryIds = true
		case pool.ColumnBaseline:
			mi.BaselineCount++
		}
		if c.Type.IsFactor() {
			if c.Type == pool.ColumnCateg {
				mi.CatFeatureIds = append(mi.CatFeatureIds, factorIdx)
			}
			factorIdx++
		}
	}
	mi.FactorCount = factorIdx
	return mi
}

// FeatureIds extracts the column ids of the factor columns, in factor
// order, for SetFeatureIds. Returns nil if every factor column has an
// empty id (i.e. the CD supplied no factor column ids); header names
// are not part of cols and play no role here.
func FeatureIds(cols Columns) []string {
	ids := make([]string, 0, len(cols))
	any := false
	for _, c := range cols {
		if c.Type.IsFactor() {
			ids = append(ids, c.Id)
			if c.Id != "" {
				any = true
			}
		}
	}
	if !any {
		return nil
	}
	return ids
}
