// Package errors provides coded errors for livehooks.
//
// Every failure the host reports carries a stable code from the registry
// (E001, E020, ...), a category, and an optional detail and suggestion.
// Codes are what travel to the client in error frames; details stay in the
// server log.
//
// # Usage
//
//	err := errors.New("E003").WithDetail("no hook registered as " + name)
//	if errors.Is(err, "E003") {
//	    ...
//	}
package errors
