package protocol

const (
	// MaxMessageSize bounds one client frame, anchor HTML included.
	MaxMessageSize = 256 << 10

	// MaxDataDepth bounds nesting of event data. Relays only send flat
	// details, so anything deep is malformed.
	MaxDataDepth = 8
)

// depth returns the nesting depth of a decoded JSON value, stopping once
// it exceeds limit.
func depth(v any, limit int) int {
	if limit < 0 {
		return 0
	}
	deepest := 0
	switch val := v.(type) {
	case map[string]any:
		for _, child := range val {
			deepest = max(deepest, depth(child, limit-1))
			if deepest > limit {
				break
			}
		}
	case []any:
		for _, child := range val {
			deepest = max(deepest, depth(child, limit-1))
			if deepest > limit {
				break
			}
		}
	default:
		return 0
	}
	return deepest + 1
}
