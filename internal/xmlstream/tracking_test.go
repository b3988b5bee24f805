package xmlstream_test

import (
	"strings"
	"testing"

	"dgkit/internal/xmlstream"

	"github.com/stretchr/testify/require"
)

func TestTrackingUnaccessedReportsIgnoredAttrsAndChildren(t *testing.T) {
	ex := xmlstream.New(strings.NewReader(
		`<artists><artist status="active"><id>1</id><name>Name</name><notes>hi</notes></artist></artists>`,
	), "artist", false, 0)

	el, err := ex.Next()
	require.NoError(t, err)

	tr := xmlstream.Wrap(el)
	id, _ := tr.FindText("id")
	require.Equal(t, "1", id)

	unaccessed := tr.Unaccessed()
	require.ElementsMatch(t, []string{"@status", "name", "notes"}, unaccessed)
}

func TestTrackingFullyAccessedLeavesNothingUnaccessed(t *testing.T) {
	ex := xmlstream.New(strings.NewReader(
		`<artists><artist><id>1</id></artist></artists>`,
	), "artist", false, 0)

	el, err := ex.Next()
	require.NoError(t, err)

	tr := xmlstream.Wrap(el)
	_, _ = tr.FindText("id")

	require.Empty(t, tr.Unaccessed())
}

func TestTrackingRecursesOnlyIntoWrappedChildren(t *testing.T) {
	ex := xmlstream.New(strings.NewReader(
		`<releases><release>`+
			`<artists><artist><id>1</id><name>A</name></artist></artists>`+
			`<title>T</title>`+
			`</release></releases>`,
	), "release", false, 0)

	el, err := ex.Next()
	require.NoError(t, err)

	tr := xmlstream.Wrap(el)
	_, _ = tr.FindText("title")
	artistsEl, ok := tr.Find("artists")
	require.True(t, ok)
	artistEl, ok := artistsEl.Find("artist")
	require.True(t, ok)
	_, _ = artistEl.FindText("id")

	unaccessed := tr.Unaccessed()
	require.ElementsMatch(t, []string{"artists/artist/name"}, unaccessed)
}

func TestTrackingTextNodeReportedWhenUnread(t *testing.T) {
	ex := xmlstream.New(strings.NewReader(
		`<artists><artist><id>1</id><notes>some free text</notes></artist></artists>`,
	), "artist", false, 0)

	el, err := ex.Next()
	require.NoError(t, err)

	tr := xmlstream.Wrap(el)
	_, _ = tr.FindText("id")
	notes, ok := tr.Find("notes")
	require.True(t, ok)

	require.ElementsMatch(t, []string{"#text"}, notes.Unaccessed())

	_ = notes.Text()
	require.Empty(t, notes.Unaccessed())
}
