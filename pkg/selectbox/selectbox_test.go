package selectbox

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/hooks"
)

func selectHTML(value string, options ...string) string {
	items := ""
	for i := 0; i+1 < len(options); i += 2 {
		items += fmt.Sprintf(`<li data-option data-value="%s">%s</li>`, options[i], options[i+1])
	}
	return fmt.Sprintf(`<div id="country" v-hook="SearchableSelect">
  <input type="hidden" data-value-input name="country" value="%s">
  <button type="button" data-toggle-button>
    <span data-display-text>Seleccione...</span>
    <svg data-chevron></svg>
  </button>
  <div data-dropdown class="hidden">
    <input data-search-input placeholder="Buscar...">
    <ul data-options-list>%s</ul>
  </div>
</div>`, value, items)
}

var countries = []string{"ar", "Argentina", "cl", "Chile", "mx", "México", "mz", "Mozambique"}

func mount(t *testing.T, markup string) (*Hook, *dom.Anchor) {
	t.Helper()
	h, err := Factory()(hooks.Env{ID: "country"}, nil)
	if err != nil {
		t.Fatalf("Factory() error = %v", err)
	}
	a, err := dom.Parse(markup)
	if err != nil {
		t.Fatalf("dom.Parse() error = %v", err)
	}
	if err := h.Mounted(a); err != nil {
		t.Fatalf("Mounted() error = %v", err)
	}
	return h.(*Hook), a
}

func send(t *testing.T, h *Hook, e hooks.Event) {
	t.Helper()
	if err := h.HandleEvent(e); err != nil {
		t.Fatalf("HandleEvent(%s) error = %v", e.Name, err)
	}
}

func toggle(t *testing.T, h *Hook) {
	send(t, h, hooks.Event{Name: "click", Target: map[string]string{"toggleButton": ""}})
}

func key(t *testing.T, h *Hook, k string) {
	send(t, h, hooks.Event{Name: "keydown", Target: map[string]string{"searchInput": ""}, Data: map[string]any{"key": k}})
}

func search(t *testing.T, h *Hook, q string) {
	send(t, h, hooks.Event{Name: "input", Target: map[string]string{"searchInput": ""}, Data: map[string]any{"value": q}})
}

func hasPatch(patches []dom.Patch, op dom.Op, sel string) bool {
	for _, p := range patches {
		if p.Op == op && p.Sel == sel {
			return true
		}
	}
	return false
}

func TestMountedShowsCurrentLabel(t *testing.T) {
	_, a := mount(t, selectHTML("mx", countries...))
	patches := a.Flush()
	if len(patches) != 1 || patches[0].Op != dom.OpSetText || patches[0].Value != "México" {
		t.Errorf("patches = %+v, want display text México", patches)
	}

	_, a = mount(t, selectHTML("", countries...))
	if a.Pending() {
		t.Errorf("no value should leave the placeholder: %+v", a.Flush())
	}
}

func TestMountedRequiresElements(t *testing.T) {
	h, _ := Factory()(hooks.Env{}, nil)
	a, _ := dom.Parse(`<div id="x"><input data-value-input></div>`)
	if err := h.Mounted(a); !errors.Is(err, "E004") {
		t.Errorf("Mounted() error = %v, want E004", err)
	}
}

func TestOpenClose(t *testing.T) {
	h, a := mount(t, selectHTML("", countries...))

	toggle(t, h)
	patches := a.Flush()
	if !h.IsOpen() {
		t.Fatal("toggle did not open")
	}
	for _, want := range []struct {
		op  dom.Op
		sel string
	}{
		{dom.OpRemoveClass, selDropdown},
		{dom.OpAddClass, selChevron},
		{dom.OpSetValue, selSearchInput},
		{dom.OpFocus, selSearchInput},
		{dom.OpListen, ""},
	} {
		if !hasPatch(patches, want.op, want.sel) {
			t.Errorf("missing %s on %q", want.op, want.sel)
		}
	}
	if h.Highlighted() != "" {
		t.Errorf("Highlighted() = %q right after open", h.Highlighted())
	}

	toggle(t, h)
	patches = a.Flush()
	if h.IsOpen() || !hasPatch(patches, dom.OpAddClass, selDropdown) || !hasPatch(patches, dom.OpRemoveClass, selChevron) {
		t.Errorf("close patches = %+v", patches)
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"ar", "cl", "mx", "mz"}},
		{"M", []string{"mx", "mz"}},
		{"MÉX", []string{"mx"}},
		{"in", []string{"ar"}},
		{"zz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h, a := mount(t, selectHTML("", countries...))
			toggle(t, h)
			search(t, h, tt.query)

			if got := h.Visible(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Visible() = %v, want %v", got, tt.want)
			}
			for i := 0; i < len(countries); i += 2 {
				node := a.Find(fmt.Sprintf(`[data-value=%q]`, countries[i]))
				shown := false
				for _, v := range tt.want {
					shown = shown || v == countries[i]
				}
				if node.HasClass("hidden") == shown {
					t.Errorf("%s hidden = %v", countries[i], !shown)
				}
			}
			wantHighlight := ""
			if len(tt.want) > 0 {
				wantHighlight = tt.want[0]
			}
			if h.Highlighted() != wantHighlight {
				t.Errorf("Highlighted() = %q, want %q", h.Highlighted(), wantHighlight)
			}
		})
	}
}

func TestKeyboard(t *testing.T) {
	h, a := mount(t, selectHTML("", countries...))
	toggle(t, h)
	search(t, h, "m")
	a.Flush()

	key(t, h, "ArrowDown")
	if h.Highlighted() != "mz" {
		t.Fatalf("Highlighted() = %q, want mz", h.Highlighted())
	}
	patches := a.Flush()
	if !hasPatch(patches, dom.OpScrollIntoView, `[data-options-list] [data-option][data-value="mz"]`) {
		t.Errorf("highlighted option not scrolled into view: %+v", patches)
	}
	if !a.Find(`[data-value="mz"]`).HasClass("bg-primary-100") || a.Find(`[data-value="mx"]`).HasClass("bg-primary-100") {
		t.Error("highlight classes not moved")
	}

	key(t, h, "ArrowDown")
	if h.Highlighted() != "mz" {
		t.Errorf("ArrowDown past the end: Highlighted() = %q", h.Highlighted())
	}
	key(t, h, "ArrowUp")
	key(t, h, "ArrowUp")
	if h.Highlighted() != "mx" {
		t.Errorf("ArrowUp past the start: Highlighted() = %q", h.Highlighted())
	}

	a.Flush()
	key(t, h, "Enter")
	patches = a.Flush()
	if h.IsOpen() {
		t.Error("Enter did not close")
	}
	if a.Find(selValueInput).Value() != "mx" || a.Find(selDisplayText).Text() != "México" {
		t.Errorf("selection = %q / %q", a.Find(selValueInput).Value(), a.Find(selDisplayText).Text())
	}
	last := patches[len(patches)-1]
	if last.Op != dom.OpDispatch || last.Sel != selValueInput || last.Name != "input" {
		t.Errorf("last patch = %+v, want input dispatch", last)
	}
}

func TestEscapeFocusesToggle(t *testing.T) {
	h, a := mount(t, selectHTML("", countries...))
	toggle(t, h)
	a.Flush()
	key(t, h, "Escape")
	patches := a.Flush()
	if h.IsOpen() || !hasPatch(patches, dom.OpFocus, selToggle) {
		t.Errorf("Escape patches = %+v", patches)
	}

	// Keys are ignored while closed.
	key(t, h, "ArrowDown")
	if a.Pending() {
		t.Errorf("closed select reacted to keys: %+v", a.Flush())
	}
}

func TestClickOption(t *testing.T) {
	h, a := mount(t, selectHTML("ar", countries...))
	toggle(t, h)
	send(t, h, hooks.Event{Name: "click", Target: map[string]string{"option": "", "value": "cl"}})
	if a.Find(selValueInput).Value() != "cl" || a.Find(selDisplayText).Text() != "Chile" {
		t.Error("option click did not select")
	}
	if h.IsOpen() {
		t.Error("option click left the dropdown open")
	}
}

func TestClickOutside(t *testing.T) {
	h, a := mount(t, selectHTML("", countries...))
	toggle(t, h)
	a.Flush()
	send(t, h, hooks.Event{Name: dom.ListenClickOutside})
	if h.IsOpen() || !hasPatch(a.Flush(), dom.OpUnlisten, "") {
		t.Error("click outside did not close")
	}
}

func TestUpdatedRecollects(t *testing.T) {
	h, _ := mount(t, selectHTML("", countries...))
	toggle(t, h)
	search(t, h, "m")

	fresh, _ := dom.Parse(selectHTML("pe", "mx", "México", "pe", "Perú", "pm", "Panamá"))
	if err := h.Updated(fresh); err != nil {
		t.Fatalf("Updated() error = %v", err)
	}
	if got := fresh.Find(selDisplayText).Text(); got != "Perú" {
		t.Errorf("display = %q, want Perú", got)
	}
	if !h.IsOpen() || fresh.Find(selDropdown).HasClass("hidden") {
		t.Error("dropdown closed by re-render")
	}
	if got := h.Visible(); !reflect.DeepEqual(got, []string{"mx", "pm"}) {
		t.Errorf("Visible() = %v, want [mx pm]", got)
	}
}
