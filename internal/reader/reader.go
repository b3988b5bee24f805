// Package reader implements C1, the decompressing reader: it opens a
// gzipped input file and exposes the decompressed byte stream plus
// byte-based progress (compressed bytes consumed so far vs. total
// compressed size), grounded on the gzip-opening half of the teacher's
// ParseXMLGeneric (internal/services/discogsXMLParser.service.go in
// _examples/Bparsons0904-waugzee), generalized into its own scoped resource
// instead of being inlined in the parser.
package reader

import (
	"fmt"
	"io"
	"os"

	"dgkit/internal/logger"

	"github.com/klauspost/compress/gzip"
)

// Reader is a scoped resource over one gzipped input file: Bytes exposes
// the decompressed stream, Close releases the gzip reader and the
// underlying file handle on every exit path.
type Reader struct {
	file      *os.File
	gz        *gzip.Reader
	counting  *countingReader
	totalSize int64
	path      string
	log       logger.Logger
}

// Open opens path (expected to be gzip-compressed) and prepares a decompressed
// byte stream. Open never leaks the file handle: on any failure after the
// file is opened, Open closes it before returning.
func Open(path string) (*Reader, error) {
	log := logger.New("reader").Function("Open").With("path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, log.Err("failed to open input file", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, log.Err("failed to stat input file", err)
	}

	counting := &countingReader{r: file}
	gz, err := gzip.NewReader(counting)
	if err != nil {
		_ = file.Close()
		return nil, log.Err("failed to open gzip stream", err)
	}

	return &Reader{
		file:      file,
		gz:        gz,
		counting:  counting,
		totalSize: info.Size(),
		path:      path,
		log:       log,
	}, nil
}

// Bytes returns the decompressed byte stream. Read errors (including a
// truncated/corrupt gzip stream discovered mid-read) are fatal per §4.1: the
// caller should treat any error from this reader as aborting the current
// file.
func (r *Reader) Bytes() io.Reader { return r.gz }

// BytesRead returns the number of *compressed* bytes consumed so far, for
// byte-based progress.
func (r *Reader) BytesRead() int64 { return r.counting.n }

// TotalSize returns the compressed file size in bytes.
func (r *Reader) TotalSize() int64 { return r.totalSize }

// Progress returns BytesRead/TotalSize in [0,1], or 0 if TotalSize is 0.
func (r *Reader) Progress() float64 {
	if r.totalSize == 0 {
		return 0
	}
	return float64(r.counting.n) / float64(r.totalSize)
}

// Close releases the gzip reader and the file handle, in that order,
// regardless of which one failed; both errors are reported if both fail.
func (r *Reader) Close() error {
	gzErr := r.gz.Close()
	fileErr := r.file.Close()
	if gzErr != nil && fileErr != nil {
		return fmt.Errorf("gzip close: %w; file close: %w", gzErr, fileErr)
	}
	if gzErr != nil {
		return fmt.Errorf("gzip close: %w", gzErr)
	}
	if fileErr != nil {
		return fmt.Errorf("file close: %w", fileErr)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
