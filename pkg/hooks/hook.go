package hooks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
	"github.com/vango-dev/livehooks/pkg/loop"
)

// AttrName is the attribute carrying a hook binding.
const AttrName = "v-hook"

// Hook is a behavior attached to one anchor element.
type Hook interface {
	// Mounted binds the hook to a freshly attached anchor.
	Mounted(anchor *dom.Anchor) error

	// Updated rebinds the hook after the server re-rendered the anchor.
	Updated(anchor *dom.Anchor) error

	// HandleEvent processes a DOM event the client forwarded.
	HandleEvent(e Event) error

	// Destroyed releases timers and listeners. No callback of the hook may
	// run afterwards.
	Destroyed()
}

// Env is what a hook instance gets from its host.
type Env struct {
	// ID is the anchor's element id.
	ID string

	// Scheduler runs timers on the session loop.
	Scheduler loop.Scheduler

	// Logger is scoped to the hook instance.
	Logger *slog.Logger

	// Observe, if set, receives named hook outcomes for metrics.
	Observe func(hook, outcome string)
}

// Record forwards an outcome to Observe when set.
func (e Env) Record(hook, outcome string) {
	if e.Observe != nil {
		e.Observe(hook, outcome)
	}
}

// Config is the raw JSON config of a binding.
type Config json.RawMessage

// Decode unmarshals the config into v. An empty config leaves v untouched.
func (c Config) Decode(v any) error {
	if len(c) == 0 {
		return nil
	}
	if err := json.Unmarshal(c, v); err != nil {
		return errors.New("E005").Wrap(err)
	}
	return nil
}

// Attr builds a v-hook attribute value for name and config.
// The config is serialized to JSON; a nil config produces just the name.
func Attr(name string, config any) (string, error) {
	if config == nil {
		return name, nil
	}
	b, err := json.Marshal(config)
	if err != nil {
		return "", errors.New("E005").WithDetail(name).Wrap(err)
	}
	return fmt.Sprintf("%s:%s", name, string(b)), nil
}

// ParseAttr splits a v-hook attribute into its name and config.
func ParseAttr(value string) (string, Config, error) {
	value = strings.TrimSpace(value)
	name, raw, _ := strings.Cut(value, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, errors.New("E003").WithDetailf("empty binding %q", value)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return name, nil, nil
	}
	if !json.Valid([]byte(raw)) {
		return "", nil, errors.New("E005").WithDetailf("%s config is not JSON", name)
	}
	return name, Config(raw), nil
}
