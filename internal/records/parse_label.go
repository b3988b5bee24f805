package records

import "dgkit/internal/xmlstream"

// ParseLabel implements the "labels" entity parser. The nesting filter
// that keeps nested <sublabels><label>...</label></sublabels> entries out
// of the extractor's top-level stream (spec.md §4.2) means this parser
// only ever sees a label whose own <sublabels> children are LabelRefs, not
// full nested label elements. Fields are read by name (Find/FindText), not
// via a single Children() sweep, so strict mode can still flag a child tag
// nobody asked for (see ParseArtist's doc comment for why).
func ParseLabel(el *xmlstream.Tracking) ([]Label, error) {
	idText, hasID := el.FindText("id")
	if !hasID || idText == "" {
		return nil, missingID(KindLabel)
	}
	id, err := requiredUint64(idText)
	if err != nil {
		return nil, &ParseError{Entity: KindLabel, Reason: "id is not an integer: " + idText}
	}

	l := Label{ID: id}

	if name, ok := el.FindText("name"); ok {
		l.Name = strPtr(name, true)
	}
	if ci, ok := el.FindText("contactinfo"); ok {
		l.ContactInfo = strPtr(ci, true)
	}
	if profile, ok := el.FindText("profile"); ok {
		l.Profile = strPtr(profile, true)
	}
	if dq, ok := el.FindText("data_quality"); ok {
		l.DataQuality = strPtr(dq, true)
	}
	if urls, ok := el.Find("urls"); ok {
		for _, u := range urls.FindAll("url") {
			l.Urls = append(l.Urls, u.Text())
		}
	}
	if subLabels, ok := el.Find("sublabels"); ok {
		l.SubLabels = parseLabelRefs(subLabels, "label")
	}
	if parentLabel, ok := el.Find("parentLabel"); ok {
		if refID, ok := parentLabel.Get("id"); ok && refID != "" {
			if name := parentLabel.Text(); name != "" {
				if pid, err := requiredUint64(refID); err == nil {
					ref := LabelRef{ID: pid, Name: name}
					l.ParentLabel = &ref
				}
			}
		}
	}

	return []Label{l}, nil
}

func parseLabelRefs(container *xmlstream.Tracking, childTag string) []LabelRef {
	var out []LabelRef
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
		out = append(out, LabelRef{ID: id, Name: name})
	}
	return out
}
