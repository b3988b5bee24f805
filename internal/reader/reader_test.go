package reader_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"dgkit/internal/reader"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writeGzipFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return path
}

func TestOpenExposesDecompressedBytesAndProgress(t *testing.T) {
	dir := t.TempDir()
	path := writeGzipFile(t, dir, "artists.xml.gz", "<artists><artist/></artists>")

	r, err := reader.Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.Greater(t, r.TotalSize(), int64(0))
	// Open already reads the gzip header through the counting reader.
	require.Greater(t, r.BytesRead(), int64(0))

	data, err := io.ReadAll(r.Bytes())
	require.NoError(t, err)
	require.Equal(t, "<artists><artist/></artists>", string(data))

	require.Greater(t, r.BytesRead(), int64(0))
	require.InDelta(t, 1.0, r.Progress(), 0.001)
}

func TestOpenMissingFileReturnsError(t *testing.T) {
	_, err := reader.Open(filepath.Join(t.TempDir(), "missing.xml.gz"))
	require.Error(t, err)
}

func TestOpenCorruptGzipReturnsErrorWithoutLeakingHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.xml.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, err := reader.Open(path)
	require.Error(t, err)

	// The file must not be left open in a way that blocks removal on any OS.
	require.NoError(t, os.Remove(path))
}
