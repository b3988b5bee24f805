// Package records implements C4: one parser per Discogs entity, each
// turning a tracked XML element into typed Go records. The struct shapes
// are grounded on the teacher's literal Discogs model
// (internal/imports/discog.types.go in _examples/Bparsons0904-waugzee),
// generalized from GORM-tagged persistence structs into plain records that
// the filter engine and both sink families operate on independent of any
// particular storage technology.
package records

// Kind names the entity a record came from and is the element tag named
// in warnings ("Unhandled in <tag> id=<id>: ..."). The relational sink
// names tables after the lower-cased Go type instead, which equals Kind
// for every entity except masters (MasterRelease -> "masterrelease").
type Kind string

const (
	KindArtist Kind = "artist"
	KindLabel  Kind = "label"
	KindMaster Kind = "master"
	KindRelease Kind = "release"
)

// ArtistRef is a minimal artist reference: both fields are required for
// the ref to survive parsing (spec.md §3, "Nested ref parsing").
type ArtistRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// LabelRef is the label analogue of ArtistRef.
type LabelRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Artist is the C4 record for the "artists" entity.
type Artist struct {
	ID              uint64      `json:"id"`
	Name            *string     `json:"name"`
	RealName        *string     `json:"real_name"`
	Profile         *string     `json:"profile"`
	DataQuality     *string     `json:"data_quality"`
	Urls            []string    `json:"urls"`
	NameVariations  []string    `json:"name_variations"`
	Aliases         []ArtistRef `json:"aliases"`
	Members         []ArtistRef `json:"members"`
	Groups          []ArtistRef `json:"groups"`
}

// Label is the C4 record for the "labels" entity.
type Label struct {
	ID          uint64     `json:"id"`
	Name        *string    `json:"name"`
	ContactInfo *string    `json:"contact_info"`
	Profile     *string    `json:"profile"`
	DataQuality *string    `json:"data_quality"`
	Urls        []string   `json:"urls"`
	SubLabels   []LabelRef `json:"sub_labels"`
	ParentLabel *LabelRef  `json:"parent_label"`
}

// CreditArtist is the "artists" child used by masters, releases, and
// tracks (credited performer, as opposed to ExtraArtist's role credit).
type CreditArtist struct {
	ID                 uint64  `json:"id"`
	ArtistNameVariation *string `json:"artist_name_variation"`
	Join               *string `json:"join"`
	Name               string  `json:"name"`
}

// ExtraArtist is a role-credited artist (producer, engineer, ...).
type ExtraArtist struct {
	ID                 *uint64 `json:"id"`
	ArtistNameVariation *string `json:"artist_name_variation"`
	Name                string  `json:"name"`
	Role                *string `json:"role"`
	Tracks              *string `json:"tracks"`
}

// Video is shared between masters and releases.
type Video struct {
	Description *string `json:"description"`
	Duration    *int    `json:"duration"`
	Embed       *bool   `json:"embed"`
	Src         *string `json:"src"`
	Title       *string `json:"title"`
}

// MasterRelease is the C4 record for the "masters" entity.
type MasterRelease struct {
	ID          uint64         `json:"id"`
	DataQuality *string        `json:"data_quality"`
	MainRelease *uint64        `json:"main_release"`
	Notes       *string        `json:"notes"`
	Title       *string        `json:"title"`
	Year        *int           `json:"year"`
	Artists     []CreditArtist `json:"artists"`
	Genres      []string       `json:"genres"`
	Styles      []string       `json:"styles"`
	Videos      []Video        `json:"videos"`
}

// ReleaseLabel is a release's label credit (distinct from LabelRef: it
// carries a catalog number, not just id+name).
type ReleaseLabel struct {
	ID            uint64  `json:"id"`
	CatalogNumber *string `json:"catalog_number"`
	Name          string  `json:"name"`
}

// Format describes one physical/media format entry of a release.
type Format struct {
	Name         *string  `json:"name"`
	Quantity     *string  `json:"quantity"`
	Text         *string  `json:"text"`
	Descriptions []string `json:"descriptions"`
}

// SubTrack is a Track minus nested sub-tracks (nesting is one level deep,
// spec.md §3 "at most one level deep").
type SubTrack struct {
	Position     *string        `json:"position"`
	Title        *string        `json:"title"`
	Duration     *string        `json:"duration"`
	Artists      []CreditArtist `json:"artists"`
	ExtraArtists []ExtraArtist  `json:"extra_artists"`
}

// Track is a release tracklist entry.
type Track struct {
	Position     *string        `json:"position"`
	Title        *string        `json:"title"`
	Duration     *string        `json:"duration"`
	Artists      []CreditArtist `json:"artists"`
	ExtraArtists []ExtraArtist  `json:"extra_artists"`
	SubTracks    []SubTrack     `json:"sub_tracks"`
}

// Identifier is a release identifier (barcode, matrix number, ...).
type Identifier struct {
	Type        string  `json:"type"`
	Description *string `json:"description"`
	Value       string  `json:"value"`
}

// Company is a release's company credit (pressing plant, distributor...).
type Company struct {
	ID             uint64  `json:"id"`
	CatalogNumber  *string `json:"catalog_number"`
	EntityType     *int    `json:"entity_type"`
	EntityTypeName *string `json:"entity_type_name"`
	Name           string  `json:"name"`
}

// Series is a release's series credit.
type Series struct {
	ID            uint64  `json:"id"`
	CatalogNumber *string `json:"catalog_number"`
	Name          string  `json:"name"`
}

// Release is the C4 record for the "releases" entity, the richest of the
// four.
type Release struct {
	ID             uint64         `json:"id"`
	Country        *string        `json:"country"`
	DataQuality    *string        `json:"data_quality"`
	IsMainRelease  *bool          `json:"is_main_release"`
	MasterID       *uint64        `json:"master_id"`
	Notes          *string        `json:"notes"`
	Released       *string        `json:"released"`
	Status         *string        `json:"status"`
	Title          *string        `json:"title"`
	Artists        []CreditArtist `json:"artists"`
	Companies      []Company      `json:"companies"`
	ExtraArtists   []ExtraArtist  `json:"extra_artists"`
	Formats        []Format       `json:"formats"`
	Genres         []string       `json:"genres"`
	Identifiers    []Identifier   `json:"identifiers"`
	Labels         []ReleaseLabel `json:"labels"`
	Series         []Series       `json:"series"`
	Styles         []string       `json:"styles"`
	Tracklist      []Track        `json:"tracklist"`
	Videos         []Video        `json:"videos"`
}
