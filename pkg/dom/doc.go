// Package dom models a hook's anchor element on the server.
//
// An Anchor is parsed from the outer HTML the client relays. Hooks query it
// with CSS selectors and mutate it through Node; every mutation is applied
// to the local tree and recorded as a Patch, which the host ships back to
// the client after the current task. The local tree therefore always shows
// what the client will show once the patches land.
package dom
