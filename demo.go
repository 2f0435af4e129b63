package livehooks

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/vango-dev/livehooks/pkg/datepicker"
	"github.com/vango-dev/livehooks/pkg/hooks"
	"github.com/vango-dev/livehooks/pkg/server"
)

//go:embed demo.html
var demoHTML string

var demoTemplate = template.Must(template.New("demo").Parse(demoHTML))

type demoPage struct {
	ClientPath string
	SocketPath string
	Datepicker string
	Countries  []demoOption
}

type demoOption struct {
	Value string
	Label string
}

var demoCountries = []demoOption{
	{"ar", "Argentina"},
	{"cl", "Chile"},
	{"co", "Colombia"},
	{"es", "España"},
	{"mx", "México"},
	{"pe", "Perú"},
	{"uy", "Uruguay"},
}

// DemoHandler renders a page with one anchor per built-in hook. socketPath
// is the WebSocket endpoint the relay connects to.
func DemoHandler(socketPath, locale string) http.Handler {
	attr, err := hooks.Attr(datepicker.Name, datepicker.Config{Locale: locale})
	if err != nil {
		attr = datepicker.Name
	}
	page := demoPage{
		ClientPath: server.ClientPath,
		SocketPath: socketPath,
		Datepicker: attr,
		Countries:  demoCountries,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := demoTemplate.Execute(w, page); err != nil {
			slog.Error("render demo page", "error", err)
		}
	})
}
