package protocol

import (
	"github.com/vango-dev/livehooks/pkg/dom"
)

// ClientType identifies a client message.
type ClientType string

const (
	TypeMount   ClientType = "mount"
	TypeUpdate  ClientType = "update"
	TypeEvent   ClientType = "event"
	TypeDestroy ClientType = "destroy"
)

// Valid reports whether t is a known client message type.
func (t ClientType) Valid() bool {
	switch t {
	case TypeMount, TypeUpdate, TypeEvent, TypeDestroy:
		return true
	}
	return false
}

// ClientMessage is a message from the browser relay.
type ClientMessage struct {
	Type   ClientType        `json:"type"`
	ID     string            `json:"id"`
	HTML   string            `json:"html,omitempty"`
	Event  string            `json:"event,omitempty"`
	Target map[string]string `json:"target,omitempty"`
	Data   map[string]any    `json:"data,omitempty"`
}

// ServerType identifies a server message.
type ServerType string

const (
	TypeHello   ServerType = "hello"
	TypePatches ServerType = "patches"
	TypeError   ServerType = "error"
)

// ServerMessage is a message to the browser relay.
type ServerMessage struct {
	Type    ServerType  `json:"type"`
	ID      string      `json:"id,omitempty"`
	Session string      `json:"session,omitempty"`
	Patches []dom.Patch `json:"patches,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Fatal   bool        `json:"fatal,omitempty"`
}

// Hello greets a new connection with its session id.
func Hello(session string) ServerMessage {
	return ServerMessage{Type: TypeHello, Session: session}
}

// Patches wraps the patches of one anchor.
func Patches(id string, patches []dom.Patch) ServerMessage {
	return ServerMessage{Type: TypePatches, ID: id, Patches: patches}
}
