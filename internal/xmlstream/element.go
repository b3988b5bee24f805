// Package xmlstream implements C2 (the incremental element extractor) and
// C3 (the tracking element view) from spec.md §4.2-4.3. There is no example
// in the retrieval pack that streams XML element-at-a-time with
// clear-on-advance memory bounding — the teacher's
// internal/services/discogsXMLParser.service.go decodes one element per
// xml.Decoder.DecodeElement call, which is the same token-driven building
// block this package generalizes into a reusable extractor with an
// accompanying capability-tracking wrapper.
package xmlstream

import "strings"

// Element is a minimal, mutable XML element tree: just enough structure
// for the extractor to build one entity's subtree and for parsers (directly
// or through a Tracking wrapper) to read it.
type Element struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Element

	parent *Element
}

// Attr returns the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// FindChild returns the first direct child with the given tag.
func (e *Element) FindChild(tag string) (*Element, bool) {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c, true
		}
	}
	return nil, false
}

// FindAllChildren returns every direct child with the given tag, in
// document order.
func (e *Element) FindAllChildren(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindText returns the text of the first direct child with the given tag.
func (e *Element) FindText(tag string) (string, bool) {
	c, ok := e.FindChild(tag)
	if !ok {
		return "", false
	}
	return c.Text, true
}

// HasNonWhitespaceText reports whether Text contains anything but
// whitespace, used by Tracking.Unaccessed to decide whether "#text" is a
// reportable unaccessed path.
func (e *Element) HasNonWhitespaceText() bool {
	return strings.TrimSpace(e.Text) != ""
}

// clear drops this element's subtree, the memory-release half of the
// extractor's clear-on-advance contract (spec.md §4.2).
func (e *Element) clear() {
	e.Children = nil
	e.Text = ""
}
