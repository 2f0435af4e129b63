// Package server hosts hook sessions over WebSocket.
//
// Each connection is a Session with its own loop.Loop. The read goroutine
// decodes client messages and dispatches them onto the loop; every hook
// callback, timer included, runs there. After each loop task the session
// flushes the patches its anchors recorded and writes them to the client.
//
// Routes (see Server.Handler):
//
//	GET /live       WebSocket endpoint
//	GET /client.js  browser relay
//	GET /healthz    liveness
//	GET /metrics    Prometheus metrics
package server
