package ingest

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// BlockReader double-buffers line reads so that I/O for the next block
// overlaps parsing of the current one (spec.md C4). Grounded on
// original_source/catboost/libs/data/load_data.cpp's
// TPoolReader::ReadBlock/ReadBlockAsync, with a buffered channel
// standing in for the original's completion event and a background
// goroutine for its "high-priority async task".
type BlockReader struct {
	scanner   *bufio.Scanner
	blockSize int

	readBuf  []string
	parseBuf []string

	done chan error
	sync bool // threadCount == 1: run the "async" read synchronously
}

// NewBlockReader wraps r, reading up to blockSize lines per block.
// sync forces the refill to run on the caller instead of a goroutine,
// matching spec.md §4.4's "if no worker threads are configured, the
// read runs synchronously on the caller".
func NewBlockReader(r io.Reader, blockSize int, sync bool) *BlockReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	br := &BlockReader{
		scanner:   sc,
		blockSize: blockSize,
		done:      make(chan error, 1),
		sync:      sync,
	}
	br.refillAsync()
	return br
}

func (br *BlockReader) refillAsync() {
	fn := func() {
		buf := make([]string, 0, br.blockSize)
		var err error
		for len(buf) < br.blockSize && br.scanner.Scan() {
			buf = append(buf, br.scanner.Text())
		}
		if len(buf) == 0 || len(buf) < br.blockSize {
			err = br.scanner.Err()
		}
		br.readBuf = buf
		br.done <- err
	}
	if br.sync {
		fn()
	} else {
		go fn()
	}
}

// ReadBlock waits for the prior refill, swaps the read and parse
// buffers, and -- if the parse buffer is non-empty -- kicks off the
// next refill and returns true. It returns false at EOF.
func (br *BlockReader) ReadBlock() (bool, error) {
	if err := <-br.done; err != nil {
		return false, errors.Wrap(err, "reading pool file block")
	}
	br.readBuf, br.parseBuf = br.parseBuf, br.readBuf
	if len(br.parseBuf) == 0 {
		return false, nil
	}
	br.refillAsync()
	return true, nil
}

// Lines returns the current parse buffer.
func (br *BlockReader) Lines() []string { return br.parseBuf }
