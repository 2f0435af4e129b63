package datepicker

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func TestNewGridLayout(t *testing.T) {
	tests := []struct {
		name      string
		month     Month
		weeks     int
		leading   int
		lastWeek0 int // day number in the first column of the last week
	}{
		{"starts saturday", Month{2025, time.March}, 6, 5, 31},
		{"starts monday, four weeks", Month{2021, time.February}, 4, 0, 22},
		{"starts sunday", Month{2025, time.June}, 6, 6, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.month, Empty, Empty)
			if len(g.Weeks) != tt.weeks {
				t.Fatalf("weeks = %d, want %d", len(g.Weeks), tt.weeks)
			}
			lead := 0
			for _, c := range g.Weeks[0] {
				if !c.Blank() {
					break
				}
				lead++
			}
			if lead != tt.leading {
				t.Errorf("leading blanks = %d, want %d", lead, tt.leading)
			}
			if got := g.Weeks[len(g.Weeks)-1][0].Date.Day(); got != tt.lastWeek0 {
				t.Errorf("last week starts on %d, want %d", got, tt.lastWeek0)
			}

			days := 0
			for _, c := range g.Cells() {
				if c.Blank() {
					continue
				}
				days++
			}
			if days != tt.month.Days() {
				t.Errorf("non-blank cells = %d, want %d", days, tt.month.Days())
			}
			if n := len(g.Cells()); n%7 != 0 {
				t.Errorf("cell count %d is not a multiple of 7", n)
			}
		})
	}
}

func TestNewGridMondayFirst(t *testing.T) {
	g := NewGrid(Month{2025, time.March}, Empty, Empty)
	for _, w := range g.Weeks {
		for col, c := range w {
			if c.Blank() {
				continue
			}
			want := time.Weekday((col + 1) % 7)
			if c.Date.Weekday() != want {
				t.Errorf("%s in column %d is a %s, want %s", c.Date, col, c.Date.Weekday(), want)
			}
		}
	}
}

func TestNewGridTags(t *testing.T) {
	today := mustDate(t, "2025-03-12")
	selected := mustDate(t, "2025-03-10")

	states := map[string]CellState{}
	for _, c := range NewGrid(Month{2025, time.March}, selected, today).Cells() {
		if !c.Blank() && c.State != CellPlain {
			states[c.Date.String()] = c.State
		}
	}
	if len(states) != 2 || states["2025-03-10"] != CellSelected || states["2025-03-12"] != CellToday {
		t.Errorf("tagged cells = %v", states)
	}

	// Selected wins when it is also today.
	for _, c := range NewGrid(Month{2025, time.March}, today, today).Cells() {
		if c.Date == today && c.State != CellSelected {
			t.Errorf("today+selected cell state = %s, want selected", c.State)
		}
	}

	// A selection in another month tags nothing here.
	other := mustDate(t, "2025-04-01")
	for _, c := range NewGrid(Month{2025, time.March}, other, Empty).Cells() {
		if c.State != CellPlain {
			t.Errorf("%s tagged %s", c.Date, c.State)
		}
	}
}

func TestRenderCalendar(t *testing.T) {
	g := NewGrid(Month{2025, time.March}, mustDate(t, "2025-03-10"), mustDate(t, "2025-03-12"))
	markup, err := RenderCalendar(g, Spanish)
	if err != nil {
		t.Fatalf("RenderCalendar() error = %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse rendered markup: %v", err)
	}

	if got := strings.TrimSpace(doc.Find("[data-month-title]").Text()); got != "Marzo 2025" {
		t.Errorf("title = %q, want Marzo 2025", got)
	}
	if n := doc.Find("[data-day]").Length(); n != 31 {
		t.Errorf("day buttons = %d, want 31", n)
	}
	if n := doc.Find(".grid-cols-7").Eq(1).Children().Filter("div").Length(); n != 42-31 {
		t.Errorf("blank cells = %d, want %d", n, 42-31)
	}
	if got := doc.Find(".grid-cols-7").First().Children().First().Text(); got != "Lu" {
		t.Errorf("first weekday header = %q, want Lu", got)
	}

	sel := doc.Find(`[data-day="2025-03-10"]`)
	if !sel.HasClass("bg-primary-600") || strings.TrimSpace(sel.Text()) != "10" {
		t.Errorf("selected cell class = %q", sel.AttrOr("class", ""))
	}
	if !doc.Find(`[data-day="2025-03-12"]`).HasClass("bg-primary-100") {
		t.Error("today cell is not highlighted")
	}
	if doc.Find(`[data-day="2025-03-11"]`).HasClass("bg-primary-100") {
		t.Error("plain cell is highlighted")
	}
	for _, attr := range []string{"[data-prev-month]", "[data-next-month]", "[data-today]"} {
		if doc.Find(attr).Length() != 1 {
			t.Errorf("missing %s", attr)
		}
	}
	if got := strings.TrimSpace(doc.Find("[data-today]").Text()); got != "Hoy" {
		t.Errorf("today label = %q", got)
	}

	en, err := RenderCalendar(g, English)
	if err != nil {
		t.Fatalf("RenderCalendar(English) error = %v", err)
	}
	if !strings.Contains(en, "March 2025") || !strings.Contains(en, ">Today<") {
		t.Error("English labels not rendered")
	}
}
