package relstore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"dgkit/internal/records"
	"dgkit/internal/relstore"

	"github.com/stretchr/testify/require"
)

func TestSingularizeHeuristic(t *testing.T) {
	schema := relstore.Derive("artist", records.Artist{}, nil)
	names := map[string]bool{}
	for _, j := range schema.Junctions {
		names[j.Name] = true
	}
	require.True(t, names["artist_alias"]) // aliases -> alias
	require.True(t, names["artist_url"])   // urls -> url
}

func TestDeriveAssignsFirstIntFieldAsPrimaryKey(t *testing.T) {
	schema := relstore.Derive("artist", records.Artist{}, nil)
	require.NotEmpty(t, schema.Columns)
	require.Equal(t, "id", schema.Columns[0].Name)
	require.True(t, schema.Columns[0].PrimaryKey)
}

func TestRowsSplitsMainAndJunctionRows(t *testing.T) {
	name := "Real Name"
	a := records.Artist{
		ID:       1,
		Name:     strPtr("A"),
		RealName: &name,
		Aliases:  []records.ArtistRef{{ID: 100, Name: "B"}, {ID: 200, Name: "C"}},
	}
	schema := relstore.Derive("artist", a, nil)

	main, junctions, err := relstore.Rows(schema, a, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), main[0])

	var aliasJunction string
	for _, j := range schema.Junctions {
		if j.FieldName == "aliases" {
			aliasJunction = j.Name
		}
	}
	require.NotEmpty(t, aliasJunction)
	require.Len(t, junctions[aliasJunction], 2)
	require.Equal(t, relstore.JunctionRow{uint64(1), uint64(100), "B"}, junctions[aliasJunction][0])
}

func TestStoreWritesToSQLiteFile(t *testing.T) {
	// Store.Close releases the backend, so the rows are read back through a
	// fresh connection to the same database file.
	path := filepath.Join(t.TempDir(), "store.db")
	backend, err := relstore.OpenSQLite(path)
	require.NoError(t, err)

	store := relstore.NewStore(backend, 10)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		a := records.Artist{ID: uint64(i), Name: strPtr("Artist"), Aliases: []records.ArtistRef{{ID: uint64(i * 100), Name: "Alias"}}}
		require.NoError(t, store.Write(ctx, "artist", a))
	}

	store.MarkClean()
	require.NoError(t, store.Close(ctx))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var artistCount, aliasCount int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM "artist"`).Scan(&artistCount))
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM "artist_alias"`).Scan(&aliasCount))
	require.Equal(t, 3, artistCount)
	require.Equal(t, 3, aliasCount)
}

func strPtr(s string) *string { return &s }
