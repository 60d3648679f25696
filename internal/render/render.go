package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/kdduha/plantdoc/internal/ui"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var page = template.Must(template.New("index.html.tmpl").Funcs(template.FuncMap{
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	// imageURL roots a classifier image path at the console origin.
	"imageURL": func(p string) string {
		if strings.HasPrefix(p, "/") {
			return p
		}
		return "/" + p
	},
	"headerStyle": func(h ui.HeaderStyle) template.CSS {
		return template.CSS(fmt.Sprintf("background: %s; box-shadow: %s", h.Background, h.BoxShadow))
	},
	// Only preview data URLs produced by the intake package reach this.
	"safeURL": func(s string) template.URL {
		if strings.HasPrefix(s, "data:image/png;base64,") {
			return template.URL(s)
		}
		return ""
	},
}).ParseFS(templatesFS, "templates/index.html.tmpl"))

type Options struct {
	AdvisorEnabled bool
}

type pageData struct {
	State          ui.State
	Sections       []string
	Styles         []template.CSS
	OverlayStyles  template.CSS
	Busy           bool
	AdvisorEnabled bool
}

// Page renders the whole document for a state snapshot.
func Page(w io.Writer, s ui.State, opts Options) error {
	data := pageData{
		State:          s,
		Sections:       ui.Sections,
		OverlayStyles:  trainingOverlayStyles,
		Busy:           s.LoadingVisible || s.TrainingOverlay,
		AdvisorEnabled: opts.AdvisorEnabled,
	}
	for _, marker := range s.Styles {
		if css, ok := notificationStyles[marker]; ok {
			data.Styles = append(data.Styles, css)
		}
	}

	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
