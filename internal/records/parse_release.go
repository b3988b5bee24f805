package records

import "dgkit/internal/xmlstream"

// ParseRelease implements the "releases" entity parser, the richest of
// the four (spec.md §3 Release). Top-level fields are read by name for the
// same strict-mode reason documented on ParseArtist; the large nested
// containers (tracklist, credits, companies, ...) are each scanned once by
// their own parseX helper, which is where spec.md §4.4's single-pass rule
// actually matters.
func ParseRelease(el *xmlstream.Tracking) ([]Release, error) {
	idAttr, hasID := el.Get("id")
	if !hasID || idAttr == "" {
		return nil, missingID(KindRelease)
	}
	id, err := requiredUint64(idAttr)
	if err != nil {
		return nil, &ParseError{Entity: KindRelease, Reason: "id is not an integer: " + idAttr}
	}

	r := Release{ID: id}

	if status, ok := el.Get("status"); ok {
		r.Status = strPtr(status, true)
	}
	if country, ok := el.FindText("country"); ok {
		r.Country = strPtr(country, true)
	}
	if dq, ok := el.FindText("data_quality"); ok {
		r.DataQuality = strPtr(dq, true)
	}
	if notes, ok := el.FindText("notes"); ok {
		r.Notes = strPtr(notes, true)
	}
	if released, ok := el.FindText("released"); ok {
		r.Released = strPtr(released, true)
	}
	if title, ok := el.FindText("title"); ok {
		r.Title = strPtr(title, true)
	}
	if masterID, ok := el.Find("master_id"); ok {
		text := masterID.Text()
		if text != "" {
			if v, err := requiredUint64(text); err == nil {
				r.MasterID = &v
			} else {
				return nil, badInt(KindRelease, idAttr, "master_id", text)
			}
		}
		if isMain, ok := masterID.Get("is_main_release"); ok {
			r.IsMainRelease = boolTrue(isMain, true)
		}
	}
	if artists, ok := el.Find("artists"); ok {
		r.Artists = parseCreditArtists(artists)
	}
	if companies, ok := el.Find("companies"); ok {
		r.Companies = parseCompanies(companies)
	}
	if extraArtists, ok := el.Find("extraartists"); ok {
		r.ExtraArtists = parseExtraArtists(extraArtists)
	}
	if formats, ok := el.Find("formats"); ok {
		r.Formats = parseFormats(formats)
	}
	if genres, ok := el.Find("genres"); ok {
		r.Genres = parseStrings(genres, "genre")
	}
	if identifiers, ok := el.Find("identifiers"); ok {
		r.Identifiers = parseIdentifiers(identifiers)
	}
	if labels, ok := el.Find("labels"); ok {
		r.Labels = parseReleaseLabels(labels)
	}
	if series, ok := el.Find("series"); ok {
		r.Series = parseSeries(series)
	}
	if styles, ok := el.Find("styles"); ok {
		r.Styles = parseStrings(styles, "style")
	}
	if tracklist, ok := el.Find("tracklist"); ok {
		r.Tracklist = parseTracklist(tracklist)
	}
	if videos, ok := el.Find("videos"); ok {
		r.Videos = parseVideos(videos)
	}

	return []Release{r}, nil
}
