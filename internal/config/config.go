package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/livehooks/internal/errors"
)

// File names Load looks for, in order.
var FileNames = []string{"livehooks.yaml", "livehooks.yml", "livehooks.json"}

const (
	// DefaultAddress is the default listen address.
	DefaultAddress = ":8080"

	// DefaultPath is the default WebSocket endpoint.
	DefaultPath = "/live"

	// DefaultNamespace prefixes metric names.
	DefaultNamespace = "livehooks"
)

// Config represents the complete livehooks configuration.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server"`
	Datepicker DatepickerConfig `json:"datepicker" yaml:"datepicker"`
	Flash      FlashConfig      `json:"flash" yaml:"flash"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains the HTTP/WebSocket host settings.
type ServerConfig struct {
	// Address is the listen address.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`

	// Path is the WebSocket endpoint.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// ReadTimeout closes sessions that stay silent this long.
	ReadTimeout Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout bounds a single frame write.
	WriteTimeout Duration `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// Heartbeat is the ping interval.
	Heartbeat Duration `json:"heartbeat,omitempty" yaml:"heartbeat,omitempty"`

	// MaxQueue is the per-session task queue size.
	MaxQueue int `json:"maxQueue,omitempty" yaml:"maxQueue,omitempty"`

	// MaxSessions caps concurrent sessions; 0 means unlimited.
	MaxSessions int `json:"maxSessions,omitempty" yaml:"maxSessions,omitempty"`

	// DevMode disables caching of the client script.
	DevMode bool `json:"devMode,omitempty" yaml:"devMode,omitempty"`
}

// DatepickerConfig contains the datepicker defaults.
type DatepickerConfig struct {
	// Debounce is how long a selection ignores inbound values.
	Debounce Duration `json:"debounce,omitempty" yaml:"debounce,omitempty"`

	// Coalesce is how long a repair waits for further re-renders.
	Coalesce Duration `json:"coalesce,omitempty" yaml:"coalesce,omitempty"`

	// Locale is a BCP 47 tag for month and weekday names.
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// FlashConfig contains the flash message defaults.
type FlashConfig struct {
	// DismissAfter is the auto-dismiss delay.
	DismissAfter Duration `json:"dismissAfter,omitempty" yaml:"dismissAfter,omitempty"`
}

// MetricsConfig contains the Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics. Nil means enabled.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace prefixes metric names.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// IsEnabled reports whether metrics are exposed.
func (m MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// New creates a new Config with default values.
func New() *Config {
	enabled := true
	return &Config{
		Server: ServerConfig{
			Address:      DefaultAddress,
			Path:         DefaultPath,
			ReadTimeout:  D(60 * time.Second),
			WriteTimeout: D(10 * time.Second),
			Heartbeat:    D(30 * time.Second),
			MaxQueue:     256,
		},
		Datepicker: DatepickerConfig{
			Debounce: D(100 * time.Millisecond),
			Coalesce: D(150 * time.Millisecond),
			Locale:   "es",
		},
		Flash: FlashConfig{
			DismissAfter: D(8 * time.Second),
		},
		Metrics: MetricsConfig{
			Enabled:   &enabled,
			Namespace: DefaultNamespace,
		},
	}
}

// Find returns the first config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Load reads configuration from dir. Without a config file it returns the
// defaults.
func Load(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return New(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates configuration from path. The format follows
// the extension: .yaml/.yml for YAML, anything else for JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E040").
				WithDetail("no config file at " + path).
				WithSuggestion("Run 'livehooks init' to write a default livehooks.yaml")
		}
		return nil, errors.New("E040").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.FromError(err, "E040").
			WithDetail("failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to path in the format its extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E040").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E040").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Server.Address == "" {
		c.Server.Address = d.Server.Address
	}
	if c.Server.Path == "" {
		c.Server.Path = d.Server.Path
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.Heartbeat.Duration == 0 {
		c.Server.Heartbeat = d.Server.Heartbeat
	}
	if c.Server.MaxQueue == 0 {
		c.Server.MaxQueue = d.Server.MaxQueue
	}

	if c.Datepicker.Debounce.Duration == 0 {
		c.Datepicker.Debounce = d.Datepicker.Debounce
	}
	if c.Datepicker.Coalesce.Duration == 0 {
		c.Datepicker.Coalesce = d.Datepicker.Coalesce
	}
	if c.Datepicker.Locale == "" {
		c.Datepicker.Locale = d.Datepicker.Locale
	}

	if c.Flash.DismissAfter.Duration == 0 {
		c.Flash.DismissAfter = d.Flash.DismissAfter
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Server.Path, "/") {
		return errors.New("E041").
			WithDetailf("server.path %q must start with /", c.Server.Path)
	}
	if c.Server.MaxQueue < 0 || c.Server.MaxSessions < 0 {
		return errors.New("E041").
			WithDetail("server.maxQueue and server.maxSessions must not be negative")
	}

	durations := []struct {
		name string
		d    Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.heartbeat", c.Server.Heartbeat},
		{"datepicker.debounce", c.Datepicker.Debounce},
		{"datepicker.coalesce", c.Datepicker.Coalesce},
		{"flash.dismissAfter", c.Flash.DismissAfter},
	}
	for _, f := range durations {
		if f.d.Duration < 0 {
			return errors.New("E041").WithDetailf("%s must be positive, got %s", f.name, f.d)
		}
	}
	if c.Server.Heartbeat.Duration >= c.Server.ReadTimeout.Duration {
		return errors.New("E041").
			WithDetail("server.heartbeat must be shorter than server.readTimeout").
			WithSuggestion("Pongs extend the read deadline; a slower heartbeat lets idle sessions time out")
	}

	if c.Datepicker.Locale != "" {
		if _, err := language.Parse(c.Datepicker.Locale); err != nil {
			return errors.New("E041").
				WithDetailf("datepicker.locale %q is not a BCP 47 tag", c.Datepicker.Locale).
				Wrap(err)
		}
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
