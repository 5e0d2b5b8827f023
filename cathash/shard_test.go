package cathash

import (
	"fmt"
	"math"
	"sync"
	"testing"
)

func TestInsertIfAbsentKeepsFirstValue(t *testing.T) {
	tb := New()
	h := Hash("red")
	tb.InsertIfAbsent(h, "red")
	tb.InsertIfAbsent(h, "not-red") // should be ignored, entry already present

	m := tb.Drain(nil)
	if got := m[h]; got != "red" {
		t.Fatalf("Drain()[%d] = %q, want %q", h, got, "red")
	}
}

func TestConcurrentInsertAllValuesSurvive(t *testing.T) {
	tb := New()
	const n = 2000
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		s := fmt.Sprintf("value-%d", i)
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			tb.InsertIfAbsent(Hash(s), s)
		}(s)
	}
	wg.Wait()

	m := tb.Drain(nil)
	if len(m) != n {
		t.Fatalf("Drain() has %d entries, want %d", len(m), n)
	}
	for h, s := range m {
		if Hash(s) != h {
			t.Fatalf("entry %d -> %q does not round-trip through Hash", h, s)
		}
	}
}

func TestToFloatRoundTrips(t *testing.T) {
	for _, h := range []int32{0, 1, -1, math.MinInt32, math.MaxInt32, 123456789} {
		f := ToFloat(h)
		if got := FromFloat(f); got != h {
			t.Fatalf("FromFloat(ToFloat(%d)) = %d", h, got)
		}
	}
}

func TestDrainUnionsAcrossShards(t *testing.T) {
	tb := New()
	for i := 0; i < ShardCount*3; i++ {
		s := fmt.Sprintf("k%d", i)
		tb.InsertIfAbsent(Hash(s), s)
	}
	m := tb.Drain(nil)
	if len(m) == 0 {
		t.Fatal("Drain() returned nothing")
	}
	// Drain into a pre-existing map should merge, not replace.
	existing := map[int32]string{999999: "preexisting"}
	merged := tb.Drain(existing)
	if _, ok := merged[999999]; !ok {
		t.Fatal("Drain(dst) dropped a pre-existing entry")
	}
}
