package records

import "dgkit/internal/xmlstream"

// parseCreditArtists reads a container's <artist> children into
// CreditArtist records (used by masters, releases, tracks, sub-tracks).
func parseCreditArtists(container *xmlstream.Tracking) []CreditArtist {
	var out []CreditArtist
	for _, c := range container.FindAll("artist") {
		idText, _ := c.FindText("id")
		name, _ := c.FindText("name")
		if idText == "" || name == "" {
			continue
		}
		id, err := requiredUint64(idText)
		if err != nil {
			continue
		}
		ca := CreditArtist{ID: id, Name: name}
		if anv, ok := c.FindText("anv"); ok && anv != "" {
			ca.ArtistNameVariation = &anv
		}
		if join, ok := c.FindText("join"); ok && join != "" {
			ca.Join = &join
		}
		out = append(out, ca)
	}
	return out
}

// parseExtraArtists reads a container's <artist> children into
// ExtraArtist records (role-credited, id optional).
func parseExtraArtists(container *xmlstream.Tracking) []ExtraArtist {
	var out []ExtraArtist
	for _, c := range container.FindAll("artist") {
		name, ok := c.FindText("name")
		if !ok || name == "" {
			continue
		}
		ea := ExtraArtist{Name: name}
		if idText, ok := c.FindText("id"); ok && idText != "" {
			if id, err := requiredUint64(idText); err == nil {
				ea.ID = &id
			}
		}
		if anv, ok := c.FindText("anv"); ok && anv != "" {
			ea.ArtistNameVariation = &anv
		}
		if role, ok := c.FindText("role"); ok && role != "" {
			ea.Role = &role
		}
		if tracks, ok := c.FindText("tracks"); ok && tracks != "" {
			ea.Tracks = &tracks
		}
		out = append(out, ea)
	}
	return out
}

func parseVideos(container *xmlstream.Tracking) []Video {
	var out []Video
	for _, c := range container.FindAll("video") {
		v := Video{}
		if desc, ok := c.FindText("description"); ok {
			v.Description = strPtr(desc, true)
		}
		if durText, ok := c.Get("duration"); ok && durText != "" {
			if d, err := parseOptInt(durText, true); err == nil {
				v.Duration = d
			}
		}
		if embedText, ok := c.Get("embed"); ok {
			v.Embed = boolTrue(embedText, true)
		}
		if src, ok := c.Get("src"); ok {
			v.Src = strPtr(src, true)
		}
		if title, ok := c.FindText("title"); ok {
			v.Title = strPtr(title, true)
		}
		out = append(out, v)
	}
	return out
}

func parseFormats(container *xmlstream.Tracking) []Format {
	var out []Format
	for _, c := range container.FindAll("format") {
		name, _ := c.Get("name")
		qty, _ := c.Get("qty")
		if name == "" || qty == "" {
			continue
		}
		f := Format{Name: strPtr(name, true)}
		// Format.quantity is kept as a string (spec.md §3): values
		// exceeding 64 bits occur in the wild.
		f.Quantity = strPtr(qty, true)
		if text, ok := c.Get("text"); ok {
			f.Text = strPtr(text, true)
		}
		if descs, ok := c.Find("descriptions"); ok {
			for _, d := range descs.FindAll("description") {
				f.Descriptions = append(f.Descriptions, d.Text())
			}
		}
		out = append(out, f)
	}
	return out
}

func parseReleaseLabels(container *xmlstream.Tracking) []ReleaseLabel {
	var out []ReleaseLabel
	for _, c := range container.FindAll("label") {
		name, _ := c.Get("name")
		idText, _ := c.Get("id")
		if name == "" || idText == "" {
			continue
		}
		id, err := requiredUint64(idText)
		if err != nil {
			continue
		}
		rl := ReleaseLabel{ID: id, Name: name}
		if cat, ok := c.Get("catno"); ok && cat != "" {
			rl.CatalogNumber = &cat
		}
		out = append(out, rl)
	}
	return out
}

func parseIdentifiers(container *xmlstream.Tracking) []Identifier {
	var out []Identifier
	for _, c := range container.FindAll("identifier") {
		typ, _ := c.Get("type")
		value, _ := c.Get("value")
		if typ == "" || value == "" {
			continue
		}
		id := Identifier{Type: typ, Value: value}
		if desc, ok := c.Get("description"); ok && desc != "" {
			id.Description = &desc
		}
		out = append(out, id)
	}
	return out
}

func parseCompanies(container *xmlstream.Tracking) []Company {
	var out []Company
	for _, c := range container.FindAll("company") {
		idText, _ := c.FindText("id")
		name, _ := c.FindText("name")
		if idText == "" || name == "" {
			continue
		}
		id, err := requiredUint64(idText)
		if err != nil {
			continue
		}
		co := Company{ID: id, Name: name}
		if cat, ok := c.FindText("catno"); ok && cat != "" {
			co.CatalogNumber = &cat
		}
		if etText, ok := c.FindText("entity_type"); ok && etText != "" {
			if v, err := parseOptInt(etText, true); err == nil {
				co.EntityType = v
			}
		}
		if etn, ok := c.FindText("entity_type_name"); ok && etn != "" {
			co.EntityTypeName = &etn
		}
		// resource_url carries no field on Company; read it purely to mark
		// it accessed so strict mode doesn't flag it as unhandled.
		c.FindText("resource_url")
		out = append(out, co)
	}
	return out
}

func parseSeries(container *xmlstream.Tracking) []Series {
	var out []Series
	for _, c := range container.FindAll("series") {
		idText, _ := c.Get("id")
		name, _ := c.Get("name")
		if idText == "" || name == "" {
			continue
		}
		id, err := requiredUint64(idText)
		if err != nil {
			continue
		}
		s := Series{ID: id, Name: name}
		if cat, ok := c.Get("catno"); ok && cat != "" {
			s.CatalogNumber = &cat
		}
		out = append(out, s)
	}
	return out
}

func parseStrings(container *xmlstream.Tracking, childTag string) []string {
	var out []string
	for _, c := range container.FindAll(childTag) {
		out = append(out, c.Text())
	}
	return out
}

func parseTracklist(container *xmlstream.Tracking) []Track {
	var out []Track
	for _, c := range container.FindAll("track") {
		t := Track{}
		for _, field := range c.Children() {
			switch field.Tag() {
			case "position":
				pos := field.Text()
				t.Position = &pos
			case "title":
				title := field.Text()
				t.Title = &title
			case "duration":
				dur := field.Text()
				t.Duration = &dur
			case "artists":
				t.Artists = parseCreditArtists(field)
			case "extraartists":
				t.ExtraArtists = parseExtraArtists(field)
			case "sub_tracks":
				t.SubTracks = parseSubTracks(field)
			}
		}
		out = append(out, t)
	}
	return out
}

func parseSubTracks(container *xmlstream.Tracking) []SubTrack {
	var out []SubTrack
	for _, c := range container.FindAll("track") {
		st := SubTrack{}
		for _, field := range c.Children() {
			switch field.Tag() {
			case "position":
				pos := field.Text()
				st.Position = &pos
			case "title":
				title := field.Text()
				st.Title = &title
			case "duration":
				dur := field.Text()
				st.Duration = &dur
			case "artists":
				st.Artists = parseCreditArtists(field)
			case "extraartists":
				st.ExtraArtists = parseExtraArtists(field)
			}
		}
		out = append(out, st)
	}
	return out
}
