// Package hooks defines the contract between the host and client-side
// behavior hooks.
//
// A hook is bound to one anchor element. The anchor names its hook in the
// v-hook attribute, optionally followed by a JSON config:
//
//	<div id="tabs-1" v-hook="Tabs">...</div>
//	<div id="due" v-hook='Datepicker:{"locale":"en"}'>...</div>
//
// The host parses the anchor, looks the name up in a Registry, and drives
// the instance through Mounted, Updated, HandleEvent and Destroyed, always
// from the owning session's loop.
package hooks
