package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
)

// openCompressed opens path for writing and layers the requested
// compression over it, returning a single io.WriteCloser that closes both
// the compressor and the file. Go's standard library compress/bzip2 is
// read-only, so bzip2 output uses github.com/dsnet/compress/bzip2, a real
// maintained package providing the writer the stdlib lacks (see
// DESIGN.md).
func openCompressed(path string, compression Compression, overwrite bool) (io.WriteCloser, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink output %s: %w", path, err)
	}

	switch compression {
	case CompressionNone:
		return f, nil
	case CompressionGzip:
		return &layeredWriteCloser{inner: gzip.NewWriter(f), file: f}, nil
	case CompressionBzip:
		bw, err := bzip2.NewWriter(f, nil)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("open bzip2 writer for %s: %w", path, err)
		}
		return &layeredWriteCloser{inner: bw, file: f}, nil
	default:
		_ = f.Close()
		return nil, fmt.Errorf("unknown compression %q", compression)
	}
}

// layeredWriteCloser closes the compressor before the underlying file,
// propagating whichever error occurred first.
type layeredWriteCloser struct {
	inner io.WriteCloser
	file  *os.File
}

func (w *layeredWriteCloser) Write(p []byte) (int, error) { return w.inner.Write(p) }

func (w *layeredWriteCloser) Close() error {
	innerErr := w.inner.Close()
	fileErr := w.file.Close()
	if innerErr != nil {
		return innerErr
	}
	return fileErr
}
