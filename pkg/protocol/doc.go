// Package protocol implements the JSON message protocol between the hook
// relay in the browser and the host.
//
// Every WebSocket text frame carries one message.
//
// # Client messages
//
//	{"type":"mount",   "id":"due", "html":"<div id=\"due\" v-hook=...>...</div>"}
//	{"type":"update",  "id":"due", "html":"..."}
//	{"type":"event",   "id":"due", "event":"click", "target":{"day":"2025-03-15"}}
//	{"type":"event",   "id":"due", "event":"keydown", "data":{"key":"Escape"}}
//	{"type":"destroy", "id":"due"}
//
// mount and update carry the anchor's outer HTML. target is the dataset of
// the nearest element inside the anchor that has data attributes.
//
// # Server messages
//
//	{"type":"hello",   "session":"01J..."}
//	{"type":"patches", "id":"due", "patches":[{"op":"set_value","sel":"[data-value-input]","value":"2025-03-15"}]}
//	{"type":"error",   "id":"due", "code":"E004", "message":"...", "fatal":false}
//
// Patch ops are defined by package dom. A fatal error is followed by the
// server closing the connection.
package protocol
