package protocol

import (
	"encoding/json"

	"github.com/vango-dev/livehooks/internal/errors"
)

// Decode parses and validates one client frame.
func Decode(data []byte) (*ClientMessage, error) {
	if len(data) > MaxMessageSize {
		return nil, errors.New("E020").WithDetailf("frame of %d bytes exceeds %d", len(data), MaxMessageSize)
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.New("E020").Wrap(err)
	}
	if err := msg.Validate(); err != nil {
		return &msg, err
	}
	return &msg, nil
}

// Validate checks the fields each message type requires.
func (m *ClientMessage) Validate() error {
	if !m.Type.Valid() {
		return errors.New("E021").WithDetailf("%q", m.Type)
	}
	if m.ID == "" {
		return errors.New("E020").WithDetail("missing id")
	}
	switch m.Type {
	case TypeMount, TypeUpdate:
		if m.HTML == "" {
			return errors.New("E020").WithDetailf("%s without html", m.Type)
		}
	case TypeEvent:
		if m.Event == "" {
			return errors.New("E020").WithDetail("event without name")
		}
		if depth(map[string]any(m.Data), MaxDataDepth) > MaxDataDepth {
			return errors.New("E020").WithDetail("event data nested too deeply")
		}
	}
	return nil
}

// Encode serializes a server message.
func Encode(msg ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// ErrorFor reports err for anchor id. Errors without a code are sent as
// internal errors without detail.
func ErrorFor(id string, err error) ServerMessage {
	msg := ServerMessage{Type: TypeError, ID: id}
	var he *errors.HookError
	if e := errors.FromError(err, ""); e != nil && e.Code != "" {
		he = e
	}
	if he == nil {
		msg.Message = "internal error"
		return msg
	}
	msg.Code = he.Code
	msg.Message = he.Message
	if he.Detail != "" {
		msg.Message += ": " + he.Detail
	}
	return msg
}

// Fatal marks msg as closing the connection.
func Fatal(msg ServerMessage) ServerMessage {
	msg.Fatal = true
	return msg
}
