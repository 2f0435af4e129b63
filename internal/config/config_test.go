package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/livehooks/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, DefaultAddress)
	}
	if cfg.Server.Path != DefaultPath {
		t.Errorf("Server.Path = %q, want %q", cfg.Server.Path, DefaultPath)
	}
	if cfg.Datepicker.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("Datepicker.Debounce = %v, want 100ms", cfg.Datepicker.Debounce)
	}
	if cfg.Datepicker.Coalesce.Duration != 150*time.Millisecond {
		t.Errorf("Datepicker.Coalesce = %v, want 150ms", cfg.Datepicker.Coalesce)
	}
	if cfg.Flash.DismissAfter.Duration != 8*time.Second {
		t.Errorf("Flash.DismissAfter = %v, want 8s", cfg.Flash.DismissAfter)
	}
	if !cfg.Metrics.IsEnabled() {
		t.Error("Metrics should be enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != DefaultAddress || cfg.Path() != "" {
		t.Errorf("Load() = %+v, want defaults", cfg.Server)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "livehooks.yaml"), `
server:
  address: ":9090"
  heartbeat: 5s
datepicker:
  coalesce: 300ms
  locale: en-GB
metrics:
  enabled: false
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("Server.Address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.Server.Heartbeat.Duration != 5*time.Second {
		t.Errorf("Server.Heartbeat = %v, want 5s", cfg.Server.Heartbeat)
	}
	if cfg.Server.Path != DefaultPath {
		t.Errorf("Server.Path = %q, want default", cfg.Server.Path)
	}
	if cfg.Datepicker.Coalesce.Duration != 300*time.Millisecond {
		t.Errorf("Datepicker.Coalesce = %v, want 300ms", cfg.Datepicker.Coalesce)
	}
	if cfg.Datepicker.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("Datepicker.Debounce = %v, want default 100ms", cfg.Datepicker.Debounce)
	}
	if cfg.Datepicker.Locale != "en-GB" {
		t.Errorf("Datepicker.Locale = %q, want en-GB", cfg.Datepicker.Locale)
	}
	if cfg.Metrics.IsEnabled() {
		t.Error("Metrics should be disabled")
	}
	if cfg.Path() != filepath.Join(dir, "livehooks.yaml") {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "livehooks.json"), `{
  "server": {"path": "/ws", "maxSessions": 10},
  "flash": {"dismissAfter": "3s"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Path != "/ws" || cfg.Server.MaxSessions != 10 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Flash.DismissAfter.Duration != 3*time.Second {
		t.Errorf("Flash.DismissAfter = %v, want 3s", cfg.Flash.DismissAfter)
	}
}

func TestLoad_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "livehooks.json"), `{"server": {"address": ":1"}}`)
	writeFile(t, filepath.Join(dir, "livehooks.yaml"), "server:\n  address: \":2\"\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Address != ":2" {
		t.Errorf("Server.Address = %q, want :2", cfg.Server.Address)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"missing file", "absent.yaml", "", "E040"},
		{"bad json", "livehooks.json", "{", "E040"},
		{"bad yaml", "livehooks.yaml", "server: [", "E040"},
		{"bad duration", "livehooks.yaml", "datepicker:\n  debounce: soon\n", "E040"},
		{"numeric duration", "livehooks.json", `{"flash": {"dismissAfter": 8}}`, "E040"},
		{"relative path", "livehooks.yaml", "server:\n  path: live\n", "E041"},
		{"negative duration", "livehooks.yaml", "datepicker:\n  coalesce: -1s\n", "E041"},
		{"slow heartbeat", "livehooks.yaml", "server:\n  heartbeat: 2m\n", "E041"},
		{"bad locale", "livehooks.yaml", "datepicker:\n  locale: \"!!\"\n", "E041"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				writeFile(t, path, tt.content)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("LoadFile() error = nil")
			}
			if got := errors.CodeOf(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	for _, name := range []string{"livehooks.yaml", "livehooks.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := New()
			cfg.Datepicker.Locale = "en"
			cfg.Flash.DismissAfter = D(2 * time.Second)
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo() error = %v", err)
			}

			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if got.Datepicker.Locale != "en" || got.Flash.DismissAfter.Duration != 2*time.Second {
				t.Errorf("reloaded = %+v / %+v", got.Datepicker, got.Flash)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
