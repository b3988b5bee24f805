package records

import "dgkit/internal/xmlstream"

// ParseArtist implements the "artists" entity parser (spec.md §3, §4.4,
// scenario 1). Each known field is read by name via Find/FindText rather
// than a single iteration over every child: an artist element has a small
// fixed field set, so spec.md §4.4's single-pass rule is reserved for the
// large nested containers (credits, tracklists) this parser hands off to
// parseCreditArtists et al. Reading fields by name is also what makes
// strict mode's unaccessed-tag audit meaningful — a child tag this parser
// never asks for (e.g. a future "unknown_field") stays unaccessed and gets
// reported, matching the original Python parser's elem.findtext/find
// style (src/dgkit/parsers.py ArtistParser.parse).
func ParseArtist(el *xmlstream.Tracking) ([]Artist, error) {
	idText, hasID := el.FindText("id")
	if !hasID || idText == "" {
		return nil, missingID(KindArtist)
	}
	id, err := requiredUint64(idText)
	if err != nil {
		return nil, &ParseError{Entity: KindArtist, Reason: "id is not an integer: " + idText}
	}

	a := Artist{ID: id}

	if name, ok := el.FindText("name"); ok {
		a.Name = strPtr(name, true)
	}
	if realName, ok := el.FindText("realname"); ok {
		a.RealName = strPtr(realName, true)
	}
	if profile, ok := el.FindText("profile"); ok {
		a.Profile = strPtr(profile, true)
	}
	if dq, ok := el.FindText("data_quality"); ok {
		a.DataQuality = strPtr(dq, true)
	}
	if urls, ok := el.Find("urls"); ok {
		for _, u := range urls.FindAll("url") {
			a.Urls = append(a.Urls, u.Text())
		}
	}
	if nv, ok := el.Find("namevariations"); ok {
		for _, n := range nv.FindAll("name") {
			a.NameVariations = append(a.NameVariations, n.Text())
		}
	}
	if aliases, ok := el.Find("aliases"); ok {
		a.Aliases = parseArtistRefs(aliases, "name")
	}
	if members, ok := el.Find("members"); ok {
		a.Members = parseArtistRefs(members, "name")
	}
	if groups, ok := el.Find("groups"); ok {
		a.Groups = parseArtistRefs(groups, "name")
	}

	return []Artist{a}, nil
}

// parseArtistRefs reads a collection of <childTag id="..">name</childTag>
// entries, dropping any entry missing id or name (spec.md §3 ArtistRef,
// §4.4 "Nested ref parsing"). This is the single-pass-over-a-container
// case spec.md §4.4 means: one scan of the container's children, no
// repeated tree walks.
func parseArtistRefs(container *xmlstream.Tracking, childTag string) []ArtistRef {
	var out []ArtistRef
	for _, c := range container.FindAll(childTag) {
		idAttr, hasID := c.Get("id")
		name := c.Text()
		if !hasID || idAttr == "" || name == "" {
			continue
		}
		id, err := requiredUint64(idAttr)
		if err != nil {
			continue
		}
		out = append(out, ArtistRef{ID: id, Name: name})
	}
	return out
}
