package records_test

import (
	"strings"
	"testing"

	"dgkit/internal/records"
	"dgkit/internal/xmlstream"

	"github.com/stretchr/testify/require"
)

func extractOne(t *testing.T, doc, tag string, requireRootParent bool) *xmlstream.Tracking {
	t.Helper()
	ex := xmlstream.New(strings.NewReader(doc), tag, requireRootParent, 0)
	el, err := ex.Next()
	require.NoError(t, err)
	return xmlstream.Wrap(el)
}

func TestParseArtistWithAliases(t *testing.T) {
	doc := `<artists><artist><id>1</id><name>A</name>` +
		`<aliases><name id="100">B</name><name id="200">C</name></aliases>` +
		`</artist></artists>`
	tr := extractOne(t, doc, "artist", false)

	recs, err := records.ParseArtist(tr)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	a := recs[0]
	require.EqualValues(t, 1, a.ID)
	require.Equal(t, "A", *a.Name)
	require.Nil(t, a.RealName)
	require.Equal(t, []records.ArtistRef{
		{ID: 100, Name: "B"},
		{ID: 200, Name: "C"},
	}, a.Aliases)
}

func TestParseArtistMissingIDIsParseError(t *testing.T) {
	doc := `<artists><artist><name>A</name></artist></artists>`
	tr := extractOne(t, doc, "artist", false)

	_, err := records.ParseArtist(tr)
	require.Error(t, err)
	var pe *records.ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, records.KindArtist, pe.Entity)
}

func TestParseArtistRefDroppedWhenMissingName(t *testing.T) {
	doc := `<artists><artist><id>1</id>` +
		`<aliases><name id="100"></name><name id="200">C</name></aliases>` +
		`</artist></artists>`
	tr := extractOne(t, doc, "artist", false)

	recs, err := records.ParseArtist(tr)
	require.NoError(t, err)
	require.Equal(t, []records.ArtistRef{{ID: 200, Name: "C"}}, recs[0].Aliases)
}

func TestParseLabelWithSubLabels(t *testing.T) {
	doc := `<labels><label><id>1</id><name>Lbl</name>` +
		`<sublabels><label id="2">Sub</label></sublabels>` +
		`</label></labels>`
	tr := extractOne(t, doc, "label", true)

	recs, err := records.ParseLabel(tr)
	require.NoError(t, err)
	require.Equal(t, []records.LabelRef{{ID: 2, Name: "Sub"}}, recs[0].SubLabels)
}

func TestParseMasterYearAndMainRelease(t *testing.T) {
	doc := `<masters><master id="10"><year>1999</year><main_release>55</main_release></master></masters>`
	tr := extractOne(t, doc, "master", false)

	recs, err := records.ParseMaster(tr)
	require.NoError(t, err)
	require.EqualValues(t, 1999, *recs[0].Year)
	require.EqualValues(t, 55, *recs[0].MainRelease)
}

func TestParseMasterInvalidYearIsParseError(t *testing.T) {
	doc := `<masters><master id="10"><year>not-a-year</year></master></masters>`
	tr := extractOne(t, doc, "master", false)

	_, err := records.ParseMaster(tr)
	require.Error(t, err)
}

func TestParseReleaseWithTracklistAndSubTracks(t *testing.T) {
	doc := `<releases><release id="7" status="Official">` +
		`<title>Album</title>` +
		`<tracklist><track><position>A1</position><title>Song</title>` +
		`<sub_tracks><track><position>A1a</position><title>Part</title></track></sub_tracks>` +
		`</track></tracklist>` +
		`</release></releases>`
	tr := extractOne(t, doc, "release", false)

	recs, err := records.ParseRelease(tr)
	require.NoError(t, err)
	r := recs[0]
	require.EqualValues(t, 7, r.ID)
	require.Equal(t, "Official", *r.Status)
	require.Len(t, r.Tracklist, 1)
	require.Equal(t, "Song", *r.Tracklist[0].Title)
	require.Len(t, r.Tracklist[0].SubTracks, 1)
	require.Equal(t, "Part", *r.Tracklist[0].SubTracks[0].Title)
}

func TestParseReleaseMasterIDAndIsMainRelease(t *testing.T) {
	doc := `<releases><release id="7">` +
		`<master_id is_main_release="true">99</master_id>` +
		`</release></releases>`
	tr := extractOne(t, doc, "release", false)

	recs, err := records.ParseRelease(tr)
	require.NoError(t, err)
	require.EqualValues(t, 99, *recs[0].MasterID)
	require.True(t, *recs[0].IsMainRelease)
}

func TestEntityFromFilename(t *testing.T) {
	entity, ok := records.EntityFromFilename("discogs_20240101_releases.xml.gz")
	require.True(t, ok)
	require.Equal(t, "releases", entity)

	entity, ok = records.EntityFromFilename("discogs_20240101_labels_sample_5.xml.gz")
	require.True(t, ok)
	require.Equal(t, "labels", entity)

	_, ok = records.EntityFromFilename("not-a-match.xml.gz")
	require.False(t, ok)
}

func TestTargetTagRequiresRootParentOnlyForLabel(t *testing.T) {
	tag, requireRoot, err := records.TargetTag("labels")
	require.NoError(t, err)
	require.Equal(t, "label", tag)
	require.True(t, requireRoot)

	tag, requireRoot, err = records.TargetTag("artists")
	require.NoError(t, err)
	require.Equal(t, "artist", tag)
	require.False(t, requireRoot)
}
