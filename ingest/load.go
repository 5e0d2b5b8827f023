package ingest

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-gbdt/poolcore/pool"
	"github.com/go-gbdt/poolcore/schema"
	"github.com/go-gbdt/poolcore/target"
)

// Load reads cdFile (schema) and poolFile (data) into p, then -- if
// pairsFile is non-empty -- loads the auxiliary pairs relation. cdFile
// and pairsFile may be empty strings, meaning "not supplied"
// (spec.md §4.1, §4.6). This is the Go counterpart of
// original_source/catboost/libs/data/load_data.cpp's ReadPool, built
// from the Builder/BlockReader/BlockParser/ReadPairs pieces above
// instead of one monolithic reader type.
func Load(cdFile, poolFile, pairsFile string, builder Builder, opts pool.Options) error {
	f, err := os.Open(poolFile)
	if err != nil {
		return &pool.IoError{Path: poolFile, Err: err}
	}
	defer f.Close()

	columnsCount, err := countColumns(f, opts.FieldDelimiter)
	if err != nil {
		return &pool.IoError{Path: poolFile, Err: err}
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return &pool.IoError{Path: poolFile, Err: err}
	}

	cols, err := loadColumns(cdFile, columnsCount)
	if err != nil {
		return err
	}
	meta := schema.MetaInfo(cols)

	builder.Start(meta)

	reader := bufio.NewReader(f)
	row := 0
	if opts.HasHeader {
		headerLine, err := readLine(reader)
		if err != nil {
			return &pool.IoError{Path: poolFile, Err: err}
		}
		row++
		tokens := strings.Split(headerLine, string(opts.FieldDelimiter))
		if len(tokens) != len(cols) {
			return &pool.ParseError{Row: row, Expected: len(cols), Found: len(tokens)}
		}
		headerIds := make([]string, 0, meta.FactorCount)
		for i, c := range cols {
			if c.Type.IsFactor() {
				headerIds = append(headerIds, tokens[i])
			}
		}
		if err := builder.SetFeatureIds(headerIds); err != nil {
			return errors.Wrap(err, "setting header-derived feature ids")
		}
	}

	parser := &BlockParser{
		Columns:   cols,
		Delimiter: opts.FieldDelimiter,
		Converter: target.NewConverter(opts.ClassNames),
		Ignored:   opts.IgnoredFeatures,
		Workers:   workerCount(opts.ThreadCount),
	}

	blockSync := opts.ThreadCount <= 1
	br := NewBlockReader(reader, opts.BlockSize, blockSync)
	for {
		ok, err := br.ReadBlock()
		if err != nil {
			return &pool.IoError{Path: poolFile, Err: err}
		}
		if !ok {
			break
		}
		lines := br.Lines()
		if err := parser.ParseBlock(builder, lines, row+1); err != nil {
			return err
		}
		row += len(lines)
	}

	// CD-supplied column ids take precedence over header-derived ones,
	// matching original_source/catboost's FinalizeBuilder.
	if ids := schema.FeatureIds(cols); ids != nil {
		if err := builder.SetFeatureIds(ids); err != nil {
			return errors.Wrap(err, "setting CD-derived feature ids")
		}
	}
	builder.Finish()

	if pairsFile != "" {
		pf, err := os.Open(pairsFile)
		if err != nil {
			return &pool.IoError{Path: pairsFile, Err: err}
		}
		defer pf.Close()
		pairs, err := ReadPairs(pf, builder.GetDocCount())
		if err != nil {
			return err
		}
		builder.SetPairs(pairs)
	}

	return nil
}

func loadColumns(cdFile string, columnsCount int) (schema.Columns, error) {
	if cdFile == "" {
		cols, err := schema.DefaultColumns(columnsCount)
		return cols, err
	}
	f, err := os.Open(cdFile)
	if err != nil {
		return nil, &pool.IoError{Path: cdFile, Err: err}
	}
	defer f.Close()
	return schema.ReadCD(f, columnsCount)
}

func countColumns(f *os.File, delimiter byte) (int, error) {
	reader := bufio.NewReader(f)
	line, err := readLine(reader)
	if err != nil {
		return 0, err
	}
	return len(strings.Split(line, string(delimiter))), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// workerCount derives the block-parser's parallel-for width from the
// configured thread count: the pool is sized to threadCount-1
// additional workers, the caller counting as one (spec.md §5); at
// threadCount==1 everything runs synchronously.
func workerCount(threadCount int) int {
	if threadCount <= 1 {
		return 1
	}
	return threadCount
}
