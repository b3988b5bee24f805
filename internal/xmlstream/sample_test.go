package xmlstream_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"dgkit/internal/xmlstream"

	"github.com/stretchr/testify/require"
)

func TestCopyElementsWritesWellFormedSubset(t *testing.T) {
	doc := `<artists><artist><id>1</id></artist><artist><id>2</id></artist><artist><id>3</id></artist></artists>`

	var out bytes.Buffer
	n, err := xmlstream.CopyElements(&out, strings.NewReader(doc), "artist", false, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ex := xmlstream.New(strings.NewReader(out.String()), "artist", false, 0)
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

func TestCopyElementsPreservesAttributesAndText(t *testing.T) {
	doc := `<releases><release id="7" status="Accepted"><title>Foo</title></release></releases>`

	var out bytes.Buffer
	n, err := xmlstream.CopyElements(&out, strings.NewReader(doc), "release", false, 10)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	ex := xmlstream.New(strings.NewReader(out.String()), "release", false, 0)
	el, err := ex.Next()
	require.NoError(t, err)
	id, ok := el.Attrs["id"]
	require.True(t, ok)
	require.Equal(t, "7", id)
	title, _ := el.FindText("title")
	require.Equal(t, "Foo", title)
}

func TestCopyElementsEmptySourceWritesNoRoot(t *testing.T) {
	doc := `<artists></artists>`

	var out bytes.Buffer
	n, err := xmlstream.CopyElements(&out, strings.NewReader(doc), "artist", false, 10)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Empty(t, out.String())
}
