// Package client embeds the browser relay served at /client.js.
package client

import _ "embed"

// RelayJS forwards hook lifecycle and DOM events to the server and applies
// the patches it sends back.
//
//go:embed livehooks.js
var RelayJS []byte
