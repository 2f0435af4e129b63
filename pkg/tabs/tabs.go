// Package tabs switches between panels inside a component.
//
//	<div id="demo" v-hook="Tabs">
//	  <button class="tab-button" data-tab="preview">Preview</button>
//	  <button class="tab-button" data-tab="code">Code</button>
//	  <div class="tab-content" data-tab-content="preview">...</div>
//	  <div class="tab-content hidden" data-tab-content="code">...</div>
//	</div>
package tabs

import (
	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/hooks"
)

// Name is the registry name of the hook.
const Name = "Tabs"

const (
	selButton  = ".tab-button"
	selContent = ".tab-content"

	attrTab     = "data-tab"
	attrContent = "data-tab-content"

	hiddenClass = "hidden"
)

var (
	activeClasses   = []string{"border-[var(--color-brand-primary)]", "text-[var(--color-brand-primary)]"}
	inactiveClasses = []string{"border-transparent", "text-subtle"}
)

// Factory returns a hooks.Factory for tab groups. Tabs take no config.
func Factory() hooks.Factory {
	return func(env hooks.Env, raw hooks.Config) (hooks.Hook, error) {
		return &Hook{env: env}, nil
	}
}

// Hook tracks the active tab of one group.
type Hook struct {
	env     hooks.Env
	anchor  *dom.Anchor
	buttons []dom.Node
	panels  []dom.Node
	active  string
}

// Mounted collects the tabs. The active tab is the button already styled
// as active, if any.
func (h *Hook) Mounted(anchor *dom.Anchor) error {
	h.collect(anchor)
	for _, b := range h.buttons {
		if b.HasClass(activeClasses[0]) {
			h.active = b.Attr(attrTab)
			break
		}
	}
	return nil
}

// Updated re-collects the tabs and re-applies the active one when the new
// markup still has it.
func (h *Hook) Updated(anchor *dom.Anchor) error {
	if h.anchor == nil {
		return errors.New("E006").WithDetail(Name)
	}
	h.collect(anchor)
	if h.has(h.active) {
		h.activate(h.active)
	} else {
		h.active = ""
	}
	return nil
}

// HandleEvent activates the clicked tab.
func (h *Hook) HandleEvent(e hooks.Event) error {
	if h.anchor == nil {
		return errors.New("E006").WithDetail(Name)
	}
	if e.Name != "click" || !e.Targets("tab") {
		return nil
	}
	tab := e.TargetValue("tab")
	if !h.has(tab) {
		return nil
	}
	h.activate(tab)
	h.env.Record(Name, "activated")
	return nil
}

// Destroyed has nothing to release.
func (h *Hook) Destroyed() {}

// Active returns the active tab name, or "" when none was chosen.
func (h *Hook) Active() string { return h.active }

func (h *Hook) collect(anchor *dom.Anchor) {
	h.anchor = anchor
	h.buttons = anchor.Find(selButton).Each(attrTab)
	h.panels = anchor.Find(selContent).Each(attrContent)
}

func (h *Hook) has(tab string) bool {
	if tab == "" {
		return false
	}
	for _, b := range h.buttons {
		if b.Attr(attrTab) == tab {
			return true
		}
	}
	return false
}

// activate only patches elements whose state differs.
func (h *Hook) activate(tab string) {
	h.active = tab
	for _, b := range h.buttons {
		on := b.Attr(attrTab) == tab
		if on == b.HasClass(activeClasses[0]) && on != b.HasClass(inactiveClasses[0]) {
			continue
		}
		if on {
			b.RemoveClass(inactiveClasses...)
			b.AddClass(activeClasses...)
		} else {
			b.RemoveClass(activeClasses...)
			b.AddClass(inactiveClasses...)
		}
	}
	for _, p := range h.panels {
		hidden := p.Attr(attrContent) != tab
		if p.HasClass(hiddenClass) != hidden {
			p.ToggleClass(hiddenClass, hidden)
		}
	}
}
