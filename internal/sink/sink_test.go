package sink_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"dgkit/internal/sink"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

type rec struct {
	ID int `json:"id"`
}

func TestConsoleWritesIndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	c := sink.Console{Writer: &buf}
	require.NoError(t, c.Open())
	require.NoError(t, c.Write(rec{ID: 1}))
	require.NoError(t, c.Close())
	require.Contains(t, buf.String(), `"id": 1`)
}

func TestBlackholeDiscardsEverything(t *testing.T) {
	b := sink.Blackhole{}
	require.NoError(t, b.Open())
	require.NoError(t, b.Write(rec{ID: 1}))
	require.NoError(t, b.Close())
	require.True(t, b.AggregatesInputs())
}

func TestJSONSinkProducesValidArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	s := &sink.JSONSink{Path: path, Overwrite: true}

	require.NoError(t, s.Open())
	require.NoError(t, s.Write(rec{ID: 1}))
	require.NoError(t, s.Write(rec{ID: 2}))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []rec
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, []rec{{ID: 1}, {ID: 2}}, out)
}

func TestJSONLinesSinkOneObjectPerLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")
	s := &sink.JSONLinesSink{Path: path, Overwrite: true}

	require.NoError(t, s.Open())
	require.NoError(t, s.Write(rec{ID: 1}))
	require.NoError(t, s.Write(rec{ID: 2}))
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)
	require.JSONEq(t, `{"id":1}`, lines[0])
	require.JSONEq(t, `{"id":2}`, lines[1])
}

func TestJSONLinesSinkWithGzipCompression(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl.gz")
	s := &sink.JSONLinesSink{Path: path, Compression: sink.CompressionGzip, Overwrite: true}

	require.NoError(t, s.Open())
	require.NoError(t, s.Write(rec{ID: 1}))
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var out rec
	dec := json.NewDecoder(gz)
	require.NoError(t, dec.Decode(&out))
	require.Equal(t, rec{ID: 1}, out)
}

func TestJSONSinkRefusesOverwriteByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	s := &sink.JSONSink{Path: path}
	require.Error(t, s.Open())
}
