package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a selection inside an Anchor. Mutations apply to every matched
// element and are recorded against the selector that produced the Node.
type Node struct {
	a   *Anchor
	sel string
	s   *goquery.Selection
}

// Selector returns the selector patches for this Node are addressed to.
func (n Node) Selector() string { return n.sel }

// Exists reports whether the selection matched anything.
func (n Node) Exists() bool { return n.s.Length() > 0 }

// Len returns the number of matched elements.
func (n Node) Len() int { return n.s.Length() }

// Attr returns the attribute of the first matched element.
func (n Node) Attr(name string) string { return n.s.AttrOr(name, "") }

// Data returns the data-<key> attribute of the first matched element.
func (n Node) Data(key string) string { return n.s.AttrOr("data-"+key, "") }

// Value returns the value attribute of the first matched element.
func (n Node) Value() string { return n.s.AttrOr("value", "") }

// Text returns the trimmed text content of the matched elements.
func (n Node) Text() string { return strings.TrimSpace(n.s.Text()) }

// HasClass reports whether any matched element has class.
func (n Node) HasClass(class string) bool { return n.s.HasClass(class) }

// Find returns descendants of this Node matching sel.
func (n Node) Find(sel string) Node {
	return Node{a: n.a, sel: strings.TrimSpace(n.sel + " " + sel), s: n.s.Find(sel)}
}

// Each returns one Node per matched element, each addressed by the value
// of attr so that patches target exactly that element. Elements without
// attr are skipped.
func (n Node) Each(attr string) []Node {
	var out []Node
	n.s.Each(func(_ int, s *goquery.Selection) {
		v, ok := s.Attr(attr)
		if !ok {
			return
		}
		out = append(out, Node{a: n.a, sel: fmt.Sprintf("%s[%s=%q]", n.sel, attr, v), s: s})
	})
	return out
}

// SetValue sets the value of the matched form controls.
func (n Node) SetValue(v string) {
	n.s.SetAttr("value", v)
	n.a.record(Patch{Op: OpSetValue, Sel: n.sel, Value: v})
}

// SetText replaces the text content of the matched elements.
func (n Node) SetText(text string) {
	n.s.SetText(text)
	n.a.record(Patch{Op: OpSetText, Sel: n.sel, Value: text})
}

// SetHTML replaces the inner HTML of the matched elements.
func (n Node) SetHTML(markup string) {
	n.s.SetHtml(markup)
	n.a.record(Patch{Op: OpSetHTML, Sel: n.sel, Value: markup})
}

// SetAttr sets an attribute on the matched elements.
func (n Node) SetAttr(name, value string) {
	n.s.SetAttr(name, value)
	n.a.record(Patch{Op: OpSetAttr, Sel: n.sel, Name: name, Value: value})
}

// AddClass adds classes to the matched elements.
func (n Node) AddClass(classes ...string) {
	if len(classes) == 0 {
		return
	}
	n.s.AddClass(classes...)
	n.a.record(Patch{Op: OpAddClass, Sel: n.sel, Name: strings.Join(classes, " ")})
}

// RemoveClass removes classes from the matched elements.
func (n Node) RemoveClass(classes ...string) {
	if len(classes) == 0 {
		return
	}
	n.s.RemoveClass(classes...)
	n.a.record(Patch{Op: OpRemoveClass, Sel: n.sel, Name: strings.Join(classes, " ")})
}

// ToggleClass adds class when on is true and removes it otherwise.
func (n Node) ToggleClass(class string, on bool) {
	if on {
		n.AddClass(class)
	} else {
		n.RemoveClass(class)
	}
}

// Dispatch asks the client to fire a bubbling DOM event on the matched
// elements. Dispatching "input" is how hooks notify the page's form
// bindings that a value changed.
func (n Node) Dispatch(event string) {
	n.a.record(Patch{Op: OpDispatch, Sel: n.sel, Name: event})
}

// Click asks the client to click the matched elements.
func (n Node) Click() {
	n.a.record(Patch{Op: OpClick, Sel: n.sel})
}

// Focus asks the client to focus the first matched element.
func (n Node) Focus() {
	n.a.record(Patch{Op: OpFocus, Sel: n.sel})
}

// ScrollIntoView asks the client to scroll the first matched element into
// view with block "nearest".
func (n Node) ScrollIntoView() {
	n.a.record(Patch{Op: OpScrollIntoView, Sel: n.sel})
}
