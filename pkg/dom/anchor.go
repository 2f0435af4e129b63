package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Anchor is the root element a hook is attached to.
type Anchor struct {
	doc     *goquery.Document
	root    *goquery.Selection
	patches []Patch
}

// Parse builds an Anchor from the outer HTML of a single element.
func Parse(markup string) (*Anchor, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse anchor: %w", err)
	}
	root := doc.Find("body").Children().First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("dom: anchor markup has no element")
	}
	return &Anchor{doc: doc, root: root}, nil
}

// ID returns the anchor's id attribute.
func (a *Anchor) ID() string {
	return a.root.AttrOr("id", "")
}

// Attr returns an attribute of the anchor element.
func (a *Anchor) Attr(name string) (string, bool) {
	return a.root.Attr(name)
}

// Data returns the data-<key> attribute of the anchor element.
func (a *Anchor) Data(key string) string {
	return a.root.AttrOr("data-"+key, "")
}

// Root returns a Node for the anchor element itself.
func (a *Anchor) Root() Node {
	return Node{a: a, s: a.root}
}

// Find returns the descendants matching sel.
func (a *Anchor) Find(sel string) Node {
	return Node{a: a, sel: sel, s: a.root.Find(sel)}
}

// Listen asks the client to forward a document-level event to this hook.
func (a *Anchor) Listen(event string) {
	a.record(Patch{Op: OpListen, Name: event})
}

// Unlisten removes a listener registered with Listen.
func (a *Anchor) Unlisten(event string) {
	a.record(Patch{Op: OpUnlisten, Name: event})
}

// HTML renders the anchor's current outer HTML.
func (a *Anchor) HTML() string {
	out, err := goquery.OuterHtml(a.root)
	if err != nil {
		return ""
	}
	return out
}

// Pending reports whether patches are waiting to be flushed.
func (a *Anchor) Pending() bool {
	return len(a.patches) > 0
}

// Flush returns the recorded patches and resets the record.
func (a *Anchor) Flush() []Patch {
	out := a.patches
	a.patches = nil
	return out
}

func (a *Anchor) record(p Patch) {
	a.patches = append(a.patches, p)
}
