package config

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/livehooks/internal/errors"
)

// Duration is a time.Duration written as a string such as "150ms".
type Duration struct {
	time.Duration
}

// D wraps d.
func D(d time.Duration) Duration {
	return Duration{Duration: d}
}

func parseDuration(s string) (Duration, error) {
	if s == "" {
		return Duration{}, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return Duration{}, errors.New("E040").
			WithDetailf("invalid duration %q", s).
			WithSuggestion(`Use a Go duration such as "100ms" or "8s"`).
			Wrap(err)
	}
	return Duration{Duration: d}, nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("E040").WithDetail("duration must be a string").Wrap(err)
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return errors.New("E040").WithDetailf("line %d: duration must be a string", value.Line).Wrap(err)
	}
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
