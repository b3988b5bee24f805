package records

import "dgkit/internal/xmlstream"

// ParseMaster implements the "masters" entity parser. main_release and
// year are the only integer fields; both follow the lazy/fail-soft rule
// (spec.md §4.4). Fields are read by name rather than via a Children()
// sweep, for the same strict-mode reason documented on ParseArtist.
func ParseMaster(el *xmlstream.Tracking) ([]MasterRelease, error) {
	idAttr, hasID := el.Get("id")
	if !hasID || idAttr == "" {
		return nil, missingID(KindMaster)
	}
	id, err := requiredUint64(idAttr)
	if err != nil {
		return nil, &ParseError{Entity: KindMaster, Reason: "id is not an integer: " + idAttr}
	}

	m := MasterRelease{ID: id}

	if dq, ok := el.FindText("data_quality"); ok {
		m.DataQuality = strPtr(dq, true)
	}
	if text, ok := el.FindText("main_release"); ok {
		v, err := parseOptInt(text, text != "")
		if err != nil {
			return nil, badInt(KindMaster, idAttr, "main_release", text)
		}
		if v != nil {
			mr := uint64(*v)
			m.MainRelease = &mr
		}
	}
	if notes, ok := el.FindText("notes"); ok {
		m.Notes = strPtr(notes, true)
	}
	if title, ok := el.FindText("title"); ok {
		m.Title = strPtr(title, true)
	}
	if text, ok := el.FindText("year"); ok {
		v, err := parseOptInt(text, text != "")
		if err != nil {
			return nil, badInt(KindMaster, idAttr, "year", text)
		}
		m.Year = v
	}
	if artists, ok := el.Find("artists"); ok {
		m.Artists = parseCreditArtists(artists)
	}
	if genres, ok := el.Find("genres"); ok {
		m.Genres = parseStrings(genres, "genre")
	}
	if styles, ok := el.Find("styles"); ok {
		m.Styles = parseStrings(styles, "style")
	}
	if videos, ok := el.Find("videos"); ok {
		m.Videos = parseVideos(videos)
	}

	return []MasterRelease{m}, nil
}
