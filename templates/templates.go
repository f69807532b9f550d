package templates

import (
	"embed"
	"html/template"
	"time"

	"ollamadash/services"
)

//go:embed *.tmpl
var files embed.FS

// Load parses every view. appName is available to all of them through the
// appName function.
func Load(appName string) (*template.Template, error) {
	funcs := template.FuncMap{
		"appName":    func() string { return appName },
		"humanBytes": services.HumanBytes,
		"seconds": func(d time.Duration) string {
			return d.Round(10 * time.Millisecond).String()
		},
	}

	return template.New("").Funcs(funcs).ParseFS(files, "*.tmpl")
}
