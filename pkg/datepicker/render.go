package datepicker

import (
	"bytes"
	"html/template"
)

var calendarTemplate = template.Must(template.New("calendar").Parse(`<div class="p-3 bg-white rounded-lg shadow-lg border border-gray-200 w-[280px]">
  <div class="flex items-center justify-between mb-3">
    <button type="button" data-prev-month aria-label="{{.Previous}}" class="p-1 hover:bg-gray-100 rounded">
      <svg class="w-5 h-5" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M15 19l-7-7 7-7"/></svg>
    </button>
    <span data-month-title class="font-semibold text-gray-900">{{.Title}}</span>
    <button type="button" data-next-month aria-label="{{.Next}}" class="p-1 hover:bg-gray-100 rounded">
      <svg class="w-5 h-5" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M9 5l7 7-7 7"/></svg>
    </button>
  </div>
  <div class="grid grid-cols-7 gap-1 mb-1">
    {{- range .Weekdays}}<div class="text-center text-xs font-medium text-gray-500 py-1">{{.}}</div>{{end}}
  </div>
  <div class="grid grid-cols-7 gap-1">
    {{- range .Cells}}{{if .Blank}}<div class="py-1"></div>{{else}}<button type="button" data-day="{{.Value}}" class="{{.Class}}">{{.Day}}</button>{{end}}{{end}}
  </div>
  <div class="mt-3 pt-3 border-t">
    <button type="button" data-today class="w-full text-sm text-primary-600 hover:text-primary-700 font-medium py-1">{{.Today}}</button>
  </div>
</div>`))

const (
	dayBaseClass     = "w-8 h-8 flex items-center justify-center text-sm rounded-full cursor-pointer"
	daySelectedClass = dayBaseClass + " bg-primary-600 text-white font-semibold"
	dayTodayClass    = dayBaseClass + " bg-primary-100 text-primary-700 font-semibold"
	dayPlainClass    = dayBaseClass + " hover:bg-gray-100 text-gray-700"
)

type renderCell struct {
	Blank bool
	Value string
	Day   int
	Class string
}

// RenderCalendar returns the overlay markup for g.
func RenderCalendar(g Grid, loc Locale) (string, error) {
	cells := g.Cells()
	data := struct {
		Title    string
		Previous string
		Next     string
		Today    string
		Weekdays [7]string
		Cells    []renderCell
	}{
		Title:    loc.MonthTitle(g.Month),
		Previous: loc.Previous,
		Next:     loc.Next,
		Today:    loc.Today,
		Weekdays: loc.Weekdays,
		Cells:    make([]renderCell, 0, len(cells)),
	}
	for _, c := range cells {
		if c.Blank() {
			data.Cells = append(data.Cells, renderCell{Blank: true})
			continue
		}
		rc := renderCell{Value: c.Date.String(), Day: c.Date.Day(), Class: dayPlainClass}
		switch c.State {
		case CellSelected:
			rc.Class = daySelectedClass
		case CellToday:
			rc.Class = dayTodayClass
		}
		data.Cells = append(data.Cells, rc)
	}

	var buf bytes.Buffer
	if err := calendarTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
