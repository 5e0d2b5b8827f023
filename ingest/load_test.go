package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gbdt/poolcore/logger"
	"github.com/go-gbdt/poolcore/pool"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestLoadMinimalNumericNoCD(t *testing.T) {
	dir := t.TempDir()
	poolFile := writeTemp(t, dir, "pool.tsv", "0.5\t1.0\t2.0\n1.5\t3.0\t4.0\n")

	p := &pool.Pool{}
	b := NewDefaultBuilder(p, logger.NopLogger)
	opts := pool.NewOptions()

	if err := Load("", poolFile, "", b, opts); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Docs) != 2 {
		t.Fatalf("len(Docs) = %d, want 2", len(p.Docs))
	}
	if p.Docs[0].Target != 0.5 {
		t.Errorf("Docs[0].Target = %v, want 0.5", p.Docs[0].Target)
	}
	if p.FeatureId != nil {
		t.Errorf("FeatureId = %v, want nil (no header, no CD ids)", p.FeatureId)
	}
}

func TestLoadWithCDAndHeaderAndPairs(t *testing.T) {
	dir := t.TempDir()
	cdFile := writeTemp(t, dir, "pool.cd", "0\tTarget\n1\tNum\tf1\n2\tCateg\tcolor\n")
	poolFile := writeTemp(t, dir, "pool.tsv", "target\tf1\tcolor\n0\t1.0\tred\n1\t2.0\tblue\n0\t3.0\tred\n1\t4.0\tblue\n")
	pairsFile := writeTemp(t, dir, "pairs.tsv", "0 3\n1 2\n")

	p := &pool.Pool{}
	b := NewDefaultBuilder(p, logger.NopLogger)
	opts := pool.NewOptions(pool.OptHasHeader(true), pool.OptBlockSize(2))

	if err := Load(cdFile, poolFile, pairsFile, b, opts); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Docs) != 4 {
		t.Fatalf("len(Docs) = %d, want 4", len(p.Docs))
	}
	wantIds := []string{"f1", "color"}
	if len(p.FeatureId) != 2 || p.FeatureId[0] != wantIds[0] || p.FeatureId[1] != wantIds[1] {
		t.Errorf("FeatureId = %v, want %v (CD ids override header)", p.FeatureId, wantIds)
	}
	if len(p.Pairs) != 2 {
		t.Fatalf("len(Pairs) = %d, want 2", len(p.Pairs))
	}
	if p.Docs[0].Factors[1] != p.Docs[2].Factors[1] {
		t.Error("red rows did not hash identically across blocks")
	}
}

func TestLoadMalformedRowFails(t *testing.T) {
	dir := t.TempDir()
	poolFile := writeTemp(t, dir, "pool.tsv",
		"0.5\t1.0\t2.0\n0.5\t1.0\t2.0\n0.5\t1.0\t2.0\n0.5\t1.0\t2.0\n0.5\t1.0\n")

	p := &pool.Pool{}
	b := NewDefaultBuilder(p, logger.NopLogger)
	opts := pool.NewOptions()

	err := Load("", poolFile, "", b, opts)
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	pe, ok := err.(*pool.ParseError)
	if !ok {
		t.Fatalf("expected *pool.ParseError, got %T: %v", err, err)
	}
	if pe.Row != 5 {
		t.Errorf("Row = %d, want 5", pe.Row)
	}
}

func TestLoadThreadCountOneMatchesParallel(t *testing.T) {
	dir := t.TempDir()
	content := ""
	for i := 0; i < 50; i++ {
		content += "0.5\t1.0\t2.0\n"
	}
	poolFile := writeTemp(t, dir, "pool.tsv", content)

	p1 := &pool.Pool{}
	b1 := NewDefaultBuilder(p1, logger.NopLogger)
	if err := Load("", poolFile, "", b1, pool.NewOptions(pool.OptThreadCount(1), pool.OptBlockSize(7))); err != nil {
		t.Fatalf("Load (serial): %v", err)
	}

	p2 := &pool.Pool{}
	b2 := NewDefaultBuilder(p2, logger.NopLogger)
	if err := Load("", poolFile, "", b2, pool.NewOptions(pool.OptThreadCount(4), pool.OptBlockSize(7))); err != nil {
		t.Fatalf("Load (parallel): %v", err)
	}

	if len(p1.Docs) != len(p2.Docs) {
		t.Fatalf("doc counts differ: %d vs %d", len(p1.Docs), len(p2.Docs))
	}
	for i := range p1.Docs {
		if p1.Docs[i].Target != p2.Docs[i].Target || p1.Docs[i].Factors[0] != p2.Docs[i].Factors[0] {
			t.Fatalf("doc %d differs between serial and parallel load", i)
		}
	}
}
