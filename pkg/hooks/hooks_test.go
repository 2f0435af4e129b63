package hooks

import (
	"testing"

	"github.com/vango-dev/livehooks/internal/errors"
	"github.com/vango-dev/livehooks/pkg/dom"
)

func TestAttr(t *testing.T) {
	got, err := Attr("Datepicker", map[string]string{"locale": "es"})
	if err != nil {
		t.Fatalf("Attr() error = %v", err)
	}
	if want := `Datepicker:{"locale":"es"}`; got != want {
		t.Errorf("Attr() = %q, want %q", got, want)
	}

	got, err = Attr("Tabs", nil)
	if err != nil || got != "Tabs" {
		t.Errorf("Attr(nil) = %q, %v", got, err)
	}

	if _, err := Attr("Bad", func() {}); !errors.Is(err, "E005") {
		t.Errorf("Attr(func) error = %v, want E005", err)
	}
}

func TestParseAttr(t *testing.T) {
	tests := []struct {
		value   string
		name    string
		config  string
		errCode string
	}{
		{value: "Datepicker", name: "Datepicker"},
		{value: " Flash : ", name: "Flash"},
		{value: `SearchableSelect:{"placeholder":"a:b"}`, name: "SearchableSelect", config: `{"placeholder":"a:b"}`},
		{value: "", errCode: "E003"},
		{value: ":{}", errCode: "E003"},
		{value: "Tabs:{oops", errCode: "E005"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			name, cfg, err := ParseAttr(tt.value)
			if tt.errCode != "" {
				if !errors.Is(err, tt.errCode) {
					t.Fatalf("ParseAttr() error = %v, want %s", err, tt.errCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAttr() error = %v", err)
			}
			if name != tt.name || string(cfg) != tt.config {
				t.Errorf("ParseAttr() = %q, %q; want %q, %q", name, cfg, tt.name, tt.config)
			}
		})
	}
}

func TestConfigDecode(t *testing.T) {
	var v struct {
		Delay int `json:"delay"`
	}
	v.Delay = 7
	if err := Config(nil).Decode(&v); err != nil || v.Delay != 7 {
		t.Errorf("empty Decode() = %v, delay %d", err, v.Delay)
	}
	if err := Config(`{"delay":3}`).Decode(&v); err != nil || v.Delay != 3 {
		t.Errorf("Decode() = %v, delay %d", err, v.Delay)
	}
	if err := Config(`{"delay":"x"}`).Decode(&v); !errors.Is(err, "E005") {
		t.Errorf("Decode(bad) error = %v, want E005", err)
	}
}

func TestEventAccessors(t *testing.T) {
	e := Event{
		Name:   "keydown",
		Target: map[string]string{"option": "", "value": "mx"},
		Data: map[string]any{
			"key":   "ArrowDown",
			"count": float64(3),
			"n":     "12",
			"ok":    true,
			"flag":  "true",
		},
	}

	if !e.Targets("option") || e.Targets("day") {
		t.Error("Targets() mismatch")
	}
	if e.TargetValue("value") != "mx" {
		t.Errorf("TargetValue() = %q", e.TargetValue("value"))
	}
	if e.String("key") != "ArrowDown" || e.String("missing") != "" {
		t.Errorf("String() = %q", e.String("key"))
	}
	if e.Int("count") != 3 || e.Int("n") != 12 || e.Int("missing") != 0 {
		t.Errorf("Int() = %d, %d", e.Int("count"), e.Int("n"))
	}
	if !e.Bool("ok") || !e.Bool("flag") || e.Bool("missing") {
		t.Error("Bool() mismatch")
	}
}

type nopHook struct{ env Env }

func (nopHook) Mounted(*dom.Anchor) error { return nil }
func (nopHook) Updated(*dom.Anchor) error { return nil }
func (nopHook) HandleEvent(Event) error   { return nil }
func (nopHook) Destroyed()                {}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("Tabs", func(env Env, _ Config) (Hook, error) { return nopHook{env: env}, nil })
	r.Register("Flash", func(env Env, _ Config) (Hook, error) { return nopHook{env: env}, nil })

	h, err := r.New("Tabs", Env{ID: "t1"}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if h.(nopHook).env.ID != "t1" {
		t.Error("env not passed to factory")
	}

	if _, err := r.New("Carousel", Env{}, nil); !errors.Is(err, "E003") {
		t.Errorf("New(unknown) error = %v, want E003", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "Flash" || names[1] != "Tabs" {
		t.Errorf("Names() = %v", names)
	}
}

func TestEnvRecord(t *testing.T) {
	var got []string
	env := Env{Observe: func(hook, outcome string) { got = append(got, hook+"/"+outcome) }}
	env.Record("Datepicker", "echo")
	Env{}.Record("Datepicker", "echo")
	if len(got) != 1 || got[0] != "Datepicker/echo" {
		t.Errorf("Record() = %v", got)
	}
}
