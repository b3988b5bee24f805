package xmlstream

import "fmt"

// Tracking wraps an *Element and records every attribute, child tag, and
// text access made through it, so that once a parser has finished reading
// an entity, Unaccessed can report whatever the parser never looked at
// (spec.md §4.3, consumed by strict mode in §7).
//
// A Tracking is single-use: build one per top-level entity element with
// Wrap, hand it to the entity parser, then call Unaccessed once parsing is
// done.
type Tracking struct {
	el *Element

	accessedAttrs     map[string]bool
	accessedChildTags map[string]bool
	accessedText      bool

	children map[*Element]*Tracking
}

// Wrap builds a Tracking view over el.
func Wrap(el *Element) *Tracking {
	return &Tracking{
		el:                el,
		accessedAttrs:     map[string]bool{},
		accessedChildTags: map[string]bool{},
		children:          map[*Element]*Tracking{},
	}
}

// Tag returns the element's tag. Reading the tag isn't tracked: every
// parser switches on it before deciding anything else, so counting it
// would make Unaccessed always-empty on that axis.
func (t *Tracking) Tag() string { return t.el.Tag }

// Get returns a named attribute and marks it accessed.
func (t *Tracking) Get(name string) (string, bool) {
	t.accessedAttrs[name] = true
	return t.el.Attr(name)
}

// Text returns the element's own text and marks it accessed.
func (t *Tracking) Text() string {
	t.accessedText = true
	return t.el.Text
}

// FindText returns the first child's text and marks that child tag
// accessed.
func (t *Tracking) FindText(tag string) (string, bool) {
	t.accessedChildTags[tag] = true
	return t.el.FindText(tag)
}

// Find returns a tracked view of the first direct child with the given
// tag, and marks that child tag accessed. Repeated calls for the same
// underlying *Element return the same *Tracking, so access made through
// any one of them is visible to Unaccessed.
func (t *Tracking) Find(tag string) (*Tracking, bool) {
	t.accessedChildTags[tag] = true
	c, ok := t.el.FindChild(tag)
	if !ok {
		return nil, false
	}
	return t.wrapChild(c), true
}

// FindAll returns tracked views of every direct child with the given tag,
// and marks that child tag accessed.
func (t *Tracking) FindAll(tag string) []*Tracking {
	t.accessedChildTags[tag] = true
	kids := t.el.FindAllChildren(tag)
	out := make([]*Tracking, 0, len(kids))
	for _, c := range kids {
		out = append(out, t.wrapChild(c))
	}
	return out
}

// Children returns tracked views of every direct child, marking all of
// their tags accessed. This is the single-pass dispatch entry point: a
// parser that switches over Children() never trips Unaccessed for any
// direct child tag, whether or not a case handled it; only unread
// attributes, text, and tags inside the returned children are reported.
func (t *Tracking) Children() []*Tracking {
	out := make([]*Tracking, 0, len(t.el.Children))
	for _, c := range t.el.Children {
		t.accessedChildTags[c.Tag] = true
		out = append(out, t.wrapChild(c))
	}
	return out
}

func (t *Tracking) wrapChild(c *Element) *Tracking {
	if w, ok := t.children[c]; ok {
		return w
	}
	w := Wrap(c)
	t.children[c] = w
	return w
}

// Unaccessed reports every attribute, child tag, and text node under this
// element's subtree that the parser never read: attribute names prefixed
// with "@", child tags never looked up as-is, and "#text" when a
// childless element carries non-whitespace text nobody fetched via Text (a
// mixed-content element with children is reported through its child tags
// instead, never as "#text"). Only children actually wrapped (via
// Find/FindAll/Children) are recursed into; a child tag never even looked
// at is reported once, not per-grandchild.
func (t *Tracking) Unaccessed() []string {
	var out []string

	for attr := range t.el.Attrs {
		if !t.accessedAttrs[attr] {
			out = append(out, fmt.Sprintf("@%s", attr))
		}
	}

	if t.el.HasNonWhitespaceText() && !t.accessedText && len(t.el.Children) == 0 {
		out = append(out, "#text")
	}

	seenTag := map[string]bool{}
	for _, c := range t.el.Children {
		if seenTag[c.Tag] {
			continue
		}
		seenTag[c.Tag] = true
		if !t.accessedChildTags[c.Tag] {
			out = append(out, c.Tag)
		}
	}

	for _, c := range t.el.Children {
		w, ok := t.children[c]
		if !ok {
			continue
		}
		for _, sub := range w.Unaccessed() {
			out = append(out, fmt.Sprintf("%s/%s", c.Tag, sub))
		}
	}

	return out
}
