package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Value Errors (E001-E002)
	// ============================================

	"E001": {
		Category: CategoryValue,
		Message:  "Malformed date",
	},
	"E002": {
		Category: CategoryValue,
		Message:  "Refusing to write an invalid date",
	},

	// ============================================
	// Hook Errors (E003-E019)
	// ============================================

	"E003": {
		Category: CategoryHook,
		Message:  "Unknown hook",
	},
	"E004": {
		Category: CategoryHook,
		Message:  "Anchor is missing a required element",
	},
	"E005": {
		Category: CategoryHook,
		Message:  "Invalid hook configuration",
	},
	"E006": {
		Category: CategoryHook,
		Message:  "Hook not mounted",
	},
	"E007": {
		Category: CategoryHook,
		Message:  "Hook already mounted",
	},

	// ============================================
	// Protocol Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryProtocol,
		Message:  "Invalid message",
	},
	"E021": {
		Category: CategoryProtocol,
		Message:  "Unknown message type",
	},
	"E022": {
		Category: CategoryProtocol,
		Message:  "Session queue full",
	},

	// ============================================
	// Config Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	"E041": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// GetAllCodes returns every registered code in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
