package hooks

import (
	"fmt"
	"strconv"
)

// Event is a DOM event forwarded by the client.
type Event struct {
	// Name is the DOM event type ("click", "input", "keydown") or a
	// document-level listener name ("click_outside").
	Name string

	// Target is the dataset of the nearest element inside the anchor
	// carrying data attributes, keyed the way the browser exposes them
	// (data-toggle-button becomes "toggleButton").
	Target map[string]string

	// Data carries event details such as "key" or "value".
	Data map[string]any
}

// Targets reports whether the event target carries the dataset key.
func (e Event) Targets(key string) bool {
	_, ok := e.Target[key]
	return ok
}

// TargetValue returns a dataset value of the target.
func (e Event) TargetValue(key string) string {
	return e.Target[key]
}

// Accessors

func (e Event) String(key string) string {
	if v, ok := e.Data[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func (e Event) Int(key string) int {
	if v, ok := e.Data[key]; ok {
		switch val := v.(type) {
		case int:
			return val
		case float64:
			return int(val)
		case string:
			i, _ := strconv.Atoi(val)
			return i
		}
	}
	return 0
}

func (e Event) Bool(key string) bool {
	if v, ok := e.Data[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
		b, _ := strconv.ParseBool(fmt.Sprintf("%v", v))
		return b
	}
	return false
}
