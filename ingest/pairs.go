package ingest

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-gbdt/poolcore/pool"
)

// ReadPairs loads the auxiliary winner/loser relation (spec.md C6).
// Each line is 2 or 3 whitespace-separated tokens: winner index, loser
// index, and an optional third "pair weight" token that is tolerated
// but ignored (SPEC_FULL.md §C.5, grounded on
// original_source/catboost's pairwise-loss reader). Every index must be
// in [0, docCount).
func ReadPairs(r io.Reader, docCount int) ([]pool.Pair, error) {
	var pairs []pool.Pair
	scanner := bufio.NewScanner(r)
	row := 0
	for scanner.Scan() {
		row++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 && len(fields) != 3 {
			return nil, &pool.PairsError{Row: row, Reason: "expected 2 or 3 fields"}
		}
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &pool.PairsError{Row: row, Reason: "winner id is not an integer: " + fields[0]}
		}
		l, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &pool.PairsError{Row: row, Reason: "loser id is not an integer: " + fields[1]}
		}
		if w < 0 || w >= docCount || l < 0 || l >= docCount {
			return nil, &pool.PairsError{Row: row, Reason: "index out of range"}
		}
		pairs = append(pairs, pool.Pair{WinnerId: w, LoserId: l})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading pairs file")
	}
	return pairs, nil
}
