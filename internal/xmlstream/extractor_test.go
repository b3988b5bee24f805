package xmlstream_test

import (
	"io"
	"strings"
	"testing"

	"dgkit/internal/xmlstream"

	"github.com/stretchr/testify/require"
)

func TestExtractorEmitsRootLevelElementsOnly(t *testing.T) {
	doc := `<artists><artist><id>1</id></artist><artist><id>2</id></artist></artists>`
	ex := xmlstream.New(strings.NewReader(doc), "artist", false, 0)

	var ids []string
	for {
		el, err := ex.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		id, _ := el.FindText("id")
		ids = append(ids, id)
	}

	require.Equal(t, []string{"1", "2"}, ids)
	require.Equal(t, "artists", ex.RootTag)
}

func TestExtractorRequireRootParentExcludesNestedLabel(t *testing.T) {
	doc := `<labels>` +
		`<label><id>1</id><sublabels><label><id>99</id></label></sublabels></label>` +
		`<label><id>2</id></label>` +
		`</labels>`
	ex := xmlstream.New(strings.NewReader(doc), "label", true, 0)

	var ids []string
	for {
		el, err := ex.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		id, _ := el.FindText("id")
		ids = append(ids, id)
	}

	require.Equal(t, []string{"1", "2"}, ids)
}

func TestExtractorRespectsLimit(t *testing.T) {
	doc := `<artists><artist><id>1</id></artist><artist><id>2</id></artist><artist><id>3</id></artist></artists>`
	ex := xmlstream.New(strings.NewReader(doc), "artist", false, 2)

	count := 0
	for {
		_, err := ex.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}

	require.Equal(t, 2, count)
}

func TestExtractorMalformedXMLIsFatal(t *testing.T) {
	doc := `<artists><artist><id>1</artist></artists>`
	ex := xmlstream.New(strings.NewReader(doc), "artist", false, 0)

	_, err := ex.Next()
	require.Error(t, err)
}

func TestExtractorPrunesPreviousElementBeforeReturningNext(t *testing.T) {
	doc := `<artists><artist><id>1</id></artist><artist><id>2</id></artist></artists>`
	ex := xmlstream.New(strings.NewReader(doc), "artist", false, 0)

	first, err := ex.Next()
	require.NoError(t, err)
	require.NotEmpty(t, first.Children)

	_, err = ex.Next()
	require.NoError(t, err)

	// The first element's subtree was cleared once Next moved past it.
	require.Empty(t, first.Children)
	require.Empty(t, first.Text)
}
