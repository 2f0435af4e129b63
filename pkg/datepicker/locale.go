package datepicker

import (
	"fmt"

	"golang.org/x/text/language"
)

// Locale holds the labels the calendar overlay shows.
type Locale struct {
	Tag language.Tag

	// Weekdays are the column headers, Monday first.
	Weekdays [7]string

	// Months are the month names, January first.
	Months [12]string

	// Today labels the jump-to-today button.
	Today string

	// Previous and Next label the navigation buttons for screen readers.
	Previous string
	Next     string
}

var (
	// Spanish is the default locale.
	Spanish = Locale{
		Tag:      language.Spanish,
		Weekdays: [7]string{"Lu", "Ma", "Mi", "Ju", "Vi", "Sá", "Do"},
		Months: [12]string{
			"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
			"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
		},
		Today:    "Hoy",
		Previous: "Mes anterior",
		Next:     "Mes siguiente",
	}

	English = Locale{
		Tag:      language.English,
		Weekdays: [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"},
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		Today:    "Today",
		Previous: "Previous month",
		Next:     "Next month",
	}
)

// locales is ordered so that index 0 is the fallback.
var locales = []Locale{Spanish, English}

var matcher = language.NewMatcher([]language.Tag{Spanish.Tag, English.Tag})

// LocaleFor returns the best supported locale for the given preferences,
// which may be BCP 47 tags or Accept-Language values. Spanish is returned
// when nothing matches.
func LocaleFor(prefs ...string) Locale {
	_, index := language.MatchStrings(matcher, prefs...)
	if index < 0 || index >= len(locales) {
		return locales[0]
	}
	return locales[index]
}

// MonthTitle returns the overlay header for m, e.g. "Marzo 2025".
func (l Locale) MonthTitle(m Month) string {
	return fmt.Sprintf("%s %d", l.Months[m.Month-1], m.Year)
}
