package selectbox

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/hooks"
)

// Name is the registry name of the hook.
const Name = "SearchableSelect"

const (
	selValueInput  = "[data-value-input]"
	selToggle      = "[data-toggle-button]"
	selDisplayText = "[data-display-text]"
	selDropdown    = "[data-dropdown]"
	selSearchInput = "[data-search-input]"
	selOptions     = "[data-options-list] [data-option]"
	selChevron     = "[data-chevron]"

	attrValue = "data-value"

	hiddenClass  = "hidden"
	rotatedClass = "rotate-180"
)

var highlightClasses = []string{"bg-primary-100", "text-primary-900"}

// Factory returns a hooks.Factory for searchable selects. They take no
// config.
func Factory() hooks.Factory {
	return func(env hooks.Env, raw hooks.Config) (hooks.Hook, error) {
		return &Hook{env: env, fold: cases.Fold(), highlighted: -1}, nil
	}
}

type option struct {
	value string
	label string
	key   string // folded label
	node  dom.Node
}

// Hook is one searchable select.
type Hook struct {
	env  hooks.Env
	fold cases.Caser

	anchor      *dom.Anchor
	options     []option
	filtered    []int
	highlighted int
	query       string
	open        bool
}

// Mounted collects the options and shows the label of the current value.
func (h *Hook) Mounted(anchor *dom.Anchor) error {
	if err := h.bind(anchor); err != nil {
		return err
	}
	h.updateDisplayText()
	return nil
}

// Updated re-collects options after a re-render. An open dropdown stays
// open with its filter applied to the new options.
func (h *Hook) Updated(anchor *dom.Anchor) error {
	if h.anchor == nil {
		return errors.New("E006").WithDetail(Name)
	}
	if err := h.bind(anchor); err != nil {
		return err
	}
	h.updateDisplayText()
	if h.open {
		h.showDropdown()
		h.filter(h.query)
	}
	return nil
}

// HandleEvent routes clicks, search input and keys.
func (h *Hook) HandleEvent(e hooks.Event) error {
	if h.anchor == nil {
		return errors.New("E006").WithDetail(Name)
	}

	switch e.Name {
	case "click":
		switch {
		case e.Targets("toggleButton"), e.Targets("displayText"), e.Targets("chevron"):
			if h.open {
				h.close()
			} else {
				h.openDropdown()
			}
		case e.Targets("option"):
			value := e.TargetValue("value")
			for _, o := range h.options {
				if o.value == value {
					h.selectOption(o)
					break
				}
			}
		}
	case "input":
		if e.Targets("searchInput") {
			h.filter(e.String("value"))
		}
	case "keydown":
		if h.open {
			h.handleKey(e.String("key"))
		}
	case dom.ListenClickOutside:
		h.close()
	}
	return nil
}

// Destroyed drops the document listener of an open dropdown.
func (h *Hook) Destroyed() {
	if h.open && h.anchor != nil {
		h.anchor.Unlisten(dom.ListenClickOutside)
	}
	h.open = false
}

// IsOpen reports whether the dropdown is visible.
func (h *Hook) IsOpen() bool { return h.open }

// Highlighted returns the value of the highlighted option, or "" if none.
func (h *Hook) Highlighted() string {
	if h.highlighted < 0 || h.highlighted >= len(h.filtered) {
		return ""
	}
	return h.options[h.filtered[h.highlighted]].value
}

// Visible returns the values of the options matching the current query.
func (h *Hook) Visible() []string {
	out := make([]string, 0, len(h.filtered))
	for _, i := range h.filtered {
		out = append(out, h.options[i].value)
	}
	return out
}

func (h *Hook) bind(anchor *dom.Anchor) error {
	for _, sel := range []string{selValueInput, selToggle, selDisplayText, selDropdown, selSearchInput} {
		if !anchor.Find(sel).Exists() {
			return errors.New("E004").WithDetailf("%s in #%s", sel, anchor.ID())
		}
	}
	h.anchor = anchor

	nodes := anchor.Find(selOptions).Each(attrValue)
	h.options = make([]option, 0, len(nodes))
	for _, n := range nodes {
		label := n.Text()
		h.options = append(h.options, option{
			value: n.Attr(attrValue),
			label: label,
			key:   h.fold.String(label),
			node:  n,
		})
	}
	h.filtered = h.filtered[:0]
	for i := range h.options {
		h.filtered = append(h.filtered, i)
	}
	h.highlighted = -1
	return nil
}

func (h *Hook) openDropdown() {
	h.open = true
	h.showDropdown()
	h.anchor.Find(selSearchInput).SetValue("")
	h.applyFilter("")
	h.anchor.Find(selSearchInput).Focus()
	h.highlighted = -1
	h.updateHighlight()
	h.anchor.Listen(dom.ListenClickOutside)
}

func (h *Hook) showDropdown() {
	if dd := h.anchor.Find(selDropdown); dd.HasClass(hiddenClass) {
		dd.RemoveClass(hiddenClass)
	}
	if ch := h.anchor.Find(selChevron); ch.Exists() && !ch.HasClass(rotatedClass) {
		ch.AddClass(rotatedClass)
	}
}

func (h *Hook) close() {
	if !h.open {
		return
	}
	h.open = false
	h.anchor.Find(selDropdown).AddClass(hiddenClass)
	if ch := h.anchor.Find(selChevron); ch.Exists() {
		ch.RemoveClass(rotatedClass)
	}
	h.highlighted = -1
	h.anchor.Unlisten(dom.ListenClickOutside)
}

// filter applies query and highlights the first match.
func (h *Hook) filter(query string) {
	h.applyFilter(query)
	h.highlighted = -1
	if len(h.filtered) > 0 {
		h.highlighted = 0
	}
	h.updateHighlight()
}

func (h *Hook) applyFilter(query string) {
	h.query = query
	key := h.fold.String(query)

	h.filtered = h.filtered[:0]
	for i, o := range h.options {
		match := strings.Contains(o.key, key)
		if match {
			h.filtered = append(h.filtered, i)
		}
		if o.node.HasClass(hiddenClass) == match {
			o.node.ToggleClass(hiddenClass, !match)
		}
	}
}

func (h *Hook) handleKey(key string) {
	switch key {
	case "ArrowDown":
		h.highlighted = min(h.highlighted+1, len(h.filtered)-1)
		h.updateHighlight()
	case "ArrowUp":
		h.highlighted = max(h.highlighted-1, 0)
		h.updateHighlight()
	case "Enter":
		if h.highlighted >= 0 && h.highlighted < len(h.filtered) {
			h.selectOption(h.options[h.filtered[h.highlighted]])
		}
	case "Escape":
		h.close()
		h.anchor.Find(selToggle).Focus()
	}
}

func (h *Hook) updateHighlight() {
	current := -1
	if h.highlighted >= 0 && h.highlighted < len(h.filtered) {
		current = h.filtered[h.highlighted]
	}
	for i, o := range h.options {
		lit := o.node.HasClass(highlightClasses[0])
		switch {
		case i == current && !lit:
			o.node.AddClass(highlightClasses...)
		case i != current && lit:
			o.node.RemoveClass(highlightClasses...)
		}
	}
	if current >= 0 {
		h.options[current].node.ScrollIntoView()
	}
}

func (h *Hook) selectOption(o option) {
	in := h.anchor.Find(selValueInput)
	in.SetValue(o.value)
	h.anchor.Find(selDisplayText).SetText(o.label)
	h.close()
	in.Dispatch("input")
	h.env.Record(Name, "selected")
}

func (h *Hook) updateDisplayText() {
	current := h.anchor.Find(selValueInput).Value()
	display := h.anchor.Find(selDisplayText)
	for _, o := range h.options {
		if o.value == current {
			if display.Text() != o.label {
				display.SetText(o.label)
			}
			return
		}
	}
}
