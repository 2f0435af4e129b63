package dom

// Op identifies a client-side DOM operation.
type Op string

const (
	OpSetValue       Op = "set_value"
	OpSetText        Op = "set_text"
	OpSetHTML        Op = "set_html"
	OpSetAttr        Op = "set_attr"
	OpAddClass       Op = "add_class"
	OpRemoveClass    Op = "remove_class"
	OpDispatch       Op = "dispatch"
	OpClick          Op = "click"
	OpFocus          Op = "focus"
	OpScrollIntoView Op = "scroll_into_view"
	OpListen         Op = "listen"
	OpUnlisten       Op = "unlisten"
)

// Patch is one DOM operation for the client to apply.
//
// Sel is relative to the anchor; an empty Sel targets the anchor itself.
// Name carries the class list, attribute name, or event name depending on
// Op.
type Patch struct {
	Op    Op     `json:"op"`
	Sel   string `json:"sel,omitempty"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Document-level listeners a hook can scope to itself.
const (
	ListenClickOutside = "click_outside"
	ListenKeydown      = "keydown"
)
