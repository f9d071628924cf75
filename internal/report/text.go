package report

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
)

// DefaultTextTemplate renders the summary printed after a run.
const DefaultTextTemplate = `{{ .Summary.Info }}

  Modules       {{ .Summary.TotalModules }}
  JS files      {{ .Summary.JSFiles }} ({{ comma .Summary.JSLineCount }} lines, {{ bytes .Summary.JSFilesSize }})
  PHTML files   {{ .Summary.PHTMLFiles }} ({{ comma .Summary.PHTMLLineCount }} lines, {{ bytes .Summary.PHTMLFilesSize }})
  Layout files  {{ .Summary.LayoutFiles }} ({{ comma .Summary.LayoutLineCount }} lines, {{ bytes .Summary.LayoutFilesSize }})
{{- if .Modules }}

Modules requiring compatibility:
{{- range .Modules }}
  - {{ .Identifier | trunc 60 }} ({{ $.RelativePath .Path }}){{ if .Classification.HasCompatibilityModule }} [{{ .Classification.CompatibilityModule }} installed]{{ end }}
{{- end }}
{{- end }}
{{- if .Unresolved }}

Modules without a resolvable path:
{{- range .Unresolved }}
  - {{ . }}
{{- end }}
{{- end }}
`

func textFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["bytes"] = func(n int64) string {
		if n < 0 {
			n = 0
		}
		return humanize.Bytes(uint64(n))
	}
	funcs["comma"] = func(n int) string {
		return humanize.Comma(int64(n))
	}
	return funcs
}

// ParseTextTemplate parses a text template with the report functions
// (sprig plus bytes and comma) available.
func ParseTextTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(textFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// WriteText renders r with DefaultTextTemplate.
func WriteText(w io.Writer, r *Report) error {
	tmpl, err := ParseTextTemplate("summary", DefaultTextTemplate)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, r); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return nil
}
