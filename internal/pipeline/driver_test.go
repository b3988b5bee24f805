package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dgkit/internal/filter"
	"dgkit/internal/pipeline"
	"dgkit/internal/sink"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, dir, name, contents string) string {
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

func TestDriverRunProcessesAllArtistsAndReportsByteProgress(t *testing.T) {
	dir := t.TempDir()
	doc := `<artists>` +
		`<artist><id>1</id><name>A</name></artist>` +
		`<artist><id>2</id><name>B</name></artist>` +
		`</artists>`
	path := writeGzip(t, dir, "discogs_20240101_artists.xml.gz", doc)

	outPath := filepath.Join(dir, "out.jsonl")
	s := &sink.JSONLinesSink{Path: outPath, Overwrite: true}

	var progressCalls int
	opts := pipeline.Options{Progress: func(p pipeline.Progress) { progressCalls++ }}
	d := pipeline.NewDriver(s, nil, opts)

	sum, err := d.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.EqualValues(t, 2, sum.Read)
	require.EqualValues(t, 2, sum.Written)
	require.EqualValues(t, 0, sum.Dropped)
	require.Equal(t, 2, progressCalls)
}

func TestDriverFilterDropsOneRecord(t *testing.T) {
	dir := t.TempDir()
	doc := `<artists>` +
		`<artist><id>1</id><name>A</name></artist>` +
		`<artist><id>2</id><name>B</name></artist>` +
		`</artists>`
	path := writeGzip(t, dir, "discogs_20240101_artists.xml.gz", doc)

	expr, err := filter.Parse("id == 1")
	require.NoError(t, err)
	chain := filter.NewChain(filter.ExprFilter{Expr: expr})

	d := pipeline.NewDriver(sink.Blackhole{}, chain, pipeline.Options{})
	sum, err := d.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.EqualValues(t, 2, sum.Read)
	require.EqualValues(t, 1, sum.Dropped)
	require.EqualValues(t, 1, sum.Written)
}

func TestDriverStrictModeReportsUnhandledField(t *testing.T) {
	dir := t.TempDir()
	doc := `<artists><artist><id>1</id><name>A</name><unknown_field>x</unknown_field></artist></artists>`
	path := writeGzip(t, dir, "discogs_20240101_artists.xml.gz", doc)

	d := pipeline.NewDriver(sink.Blackhole{}, nil, pipeline.Options{Strict: true})
	sum, err := d.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.GreaterOrEqual(t, sum.Unhandled, uint64(1))
	require.Contains(t, sum.Warnings[0], "Unhandled in artist id=1")
	require.Contains(t, sum.Warnings[0], "unknown_field")
}

func TestDriverLimitUsesElementBasedProgress(t *testing.T) {
	dir := t.TempDir()
	doc := `<artists>` +
		`<artist><id>1</id></artist><artist><id>2</id></artist><artist><id>3</id></artist>` +
		`</artists>`
	path := writeGzip(t, dir, "discogs_20240101_artists.xml.gz", doc)

	var lastProgress pipeline.Progress
	opts := pipeline.Options{Limit: 2, Progress: func(p pipeline.Progress) { lastProgress = p }}
	d := pipeline.NewDriver(sink.Blackhole{}, nil, opts)

	sum, err := d.Run(context.Background(), []string{path})
	require.NoError(t, err)
	require.EqualValues(t, 2, sum.Read)
	require.Equal(t, 2, lastProgress.ElementsDone)
	require.Equal(t, 2, lastProgress.ElementsLimit)
}

func TestDriverMissingTypeOverrideOnUnrecognizedFilenameErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeGzip(t, dir, "not-a-discogs-file.xml.gz", `<artists></artists>`)

	d := pipeline.NewDriver(sink.Blackhole{}, nil, pipeline.Options{})
	_, err := d.Run(context.Background(), []string{path})
	require.Error(t, err)
}
