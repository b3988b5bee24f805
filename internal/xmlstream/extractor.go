package xmlstream

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Extractor streams root-level entity elements out of a decompressed XML
// byte stream one at a time (C2). Call Next repeatedly; it returns
// io.EOF once the document (or an optional limit) is exhausted.
//
// Memory bound: Next clears the previously returned element's subtree, and
// prunes it out of the root container's children, before decoding further
// tokens — so resident memory is at most the element under construction
// plus the root and any ancestors, never the whole document (spec.md §4.2,
// tested by the "extractor memory bound" property in §8).
type Extractor struct {
	dec    *xml.Decoder
	target string

	// requireRootParent mirrors the label/sublabels nesting rule: "label"
	// appears both as a direct child of the root <labels> container and
	// nested inside <sublabels>, so only direct children of the root count
	// as entities. Every other entity tag never recurs, so the pipeline
	// driver leaves this false for them and Next skips the parent check.
	requireRootParent bool

	limit   int
	emitted int

	root    *Element
	stack   []*Element
	pending *Element

	// RootTag and RootAttrs capture the document root (<artists>,
	// <labels>, ...), used by the sample command to re-emit a well-formed
	// root element around the sliced-out entities.
	RootTag   string
	RootAttrs map[string]string
}

// New builds an Extractor over r, emitting direct children of the document
// root whose tag equals target. requireRootParent should be true only for
// the "label" entity (see the doc comment above).
func New(r io.Reader, target string, requireRootParent bool, limit int) *Extractor {
	return &Extractor{
		dec:               xml.NewDecoder(r),
		target:            target,
		requireRootParent: requireRootParent,
		limit:             limit,
	}
}

// Next returns the next matching element, or (nil, io.EOF) when the
// document or the limit is exhausted. A malformed-XML error from the
// underlying decoder is fatal (§4.2/§7): the pipeline driver aborts the
// current file.
func (x *Extractor) Next() (*Element, error) {
	if x.limit > 0 && x.emitted >= x.limit {
		return nil, io.EOF
	}

	if x.pending != nil {
		x.prune(x.pending)
		x.pending = nil
	}

	for {
		tok, err := x.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: t.Name.Local, Attrs: attrsOf(t)}
			if len(x.stack) == 0 {
				x.root = el
				x.RootTag = el.Tag
				x.RootAttrs = el.Attrs
			} else {
				parent := x.stack[len(x.stack)-1]
				parent.Children = append(parent.Children, el)
				el.parent = parent
			}
			x.stack = append(x.stack, el)

		case xml.CharData:
			if len(x.stack) > 0 {
				top := x.stack[len(x.stack)-1]
				top.Text += string(t)
			}

		case xml.EndElement:
			if len(x.stack) == 0 {
				continue
			}
			finished := x.stack[len(x.stack)-1]
			x.stack = x.stack[:len(x.stack)-1]

			if finished.Tag != x.target {
				continue
			}
			if x.requireRootParent && finished.parent != x.root {
				continue
			}
			// Every non-"label" entity never recurs under itself, so for
			// those x.requireRootParent is false and we accept any depth;
			// in practice that's always depth 1 too, but skipping the
			// check avoids a pointer comparison per element.

			x.pending = finished
			x.emitted++
			return finished, nil
		}
	}
}

// prune clears el's subtree and drops it (and anything left before it) from
// the root's children, the "walk previous siblings ... and delete them"
// step of §4.2.
func (x *Extractor) prune(el *Element) {
	el.clear()
	if x.root != nil {
		x.root.Children = x.root.Children[:0]
	}
}

func attrsOf(t xml.StartElement) map[string]string {
	if len(t.Attr) == 0 {
		return map[string]string{}
	}
	m := make(map[string]string, len(t.Attr))
	for _, a := range t.Attr {
		m[a.Name.Local] = a.Value
	}
	return m
}
