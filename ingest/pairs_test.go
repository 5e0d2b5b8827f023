package ingest

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-gbdt/poolcore/pool"
)

func TestReadPairsBasic(t *testing.T) {
	pairs, err := ReadPairs(strings.NewReader("0 3\n1 2\n"), 4)
	if err != nil {
		t.Fatalf("ReadPairs: %v", err)
	}
	want := []pool.Pair{{WinnerId: 0, LoserId: 3}, {WinnerId: 1, LoserId: 2}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("pairs = %v, want %v", pairs, want)
	}
}

func TestReadPairsIgnoresTrailingWeightToken(t *testing.T) {
	pairs, err := ReadPairs(strings.NewReader("0 1 0.75\n"), 2)
	if err != nil {
		t.Fatalf("ReadPairs: %v", err)
	}
	if len(pairs) != 1 || pairs[0] != (pool.Pair{WinnerId: 0, LoserId: 1}) {
		t.Errorf("pairs = %v, want [{0 1}]", pairs)
	}
}

func TestReadPairsOutOfRangeFails(t *testing.T) {
	_, err := ReadPairs(strings.NewReader("0 5\n"), 4)
	if err == nil {
		t.Fatal("expected PairsError")
	}
	if _, ok := err.(*pool.PairsError); !ok {
		t.Fatalf("expected *pool.PairsError, got %T", err)
	}
}

func TestReadPairsEmptyIsNoOp(t *testing.T) {
	pairs, err := ReadPairs(strings.NewReader(""), 4)
	if err != nil {
		t.Fatalf("ReadPairs: %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("pairs = %v, want empty", pairs)
	}
}
