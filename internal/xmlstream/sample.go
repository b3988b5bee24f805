package xmlstream

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
)

// CopyElements drives an Extractor over src for up to limit elements and
// re-emits them as a single well-formed XML document on dst, wrapped in
// the original root element tag and attributes — the element-accurate
// slicing the sample subcommand needs (spec.md §1 "An element sampler",
// supplemented from original_source/src/dgkit/sampler.py per
// SPEC_FULL.md §12.2). It returns the number of elements written.
func CopyElements(dst io.Writer, src io.Reader, target string, requireRootParent bool, limit int) (int, error) {
	ex := New(src, target, requireRootParent, limit)
	enc := xml.NewEncoder(dst)

	count := 0
	rootOpen := false

	for {
		el, err := ex.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("xmlstream: sampling: %w", err)
		}

		if !rootOpen {
			root := xml.StartElement{Name: xml.Name{Local: ex.RootTag}, Attr: sortedAttrs(ex.RootAttrs)}
			if err := enc.EncodeToken(root); err != nil {
				return count, fmt.Errorf("xmlstream: writing root element: %w", err)
			}
			rootOpen = true
		}

		if err := writeElement(enc, el); err != nil {
			return count, fmt.Errorf("xmlstream: writing element: %w", err)
		}
		count++
	}

	if rootOpen {
		if err := enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: ex.RootTag}}); err != nil {
			return count, fmt.Errorf("xmlstream: closing root element: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return count, fmt.Errorf("xmlstream: flushing sample output: %w", err)
	}
	return count, nil
}

func writeElement(enc *xml.Encoder, el *Element) error {
	start := xml.StartElement{Name: xml.Name{Local: el.Tag}, Attr: sortedAttrs(el.Attrs)}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if el.Text != "" {
		if err := enc.EncodeToken(xml.CharData(el.Text)); err != nil {
			return err
		}
	}
	for _, c := range el.Children {
		if err := writeElement(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// sortedAttrs renders a tracking/element attribute map as xml.Attr in a
// deterministic (name-sorted) order; map iteration order is otherwise
// unspecified and would make sample output non-reproducible byte-for-byte.
func sortedAttrs(attrs map[string]string) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]xml.Attr, len(names))
	for i, name := range names {
		out[i] = xml.Attr{Name: xml.Name{Local: name}, Value: attrs[name]}
	}
	return out
}
