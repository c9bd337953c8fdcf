// Package docs serves an interactive API reference for the generated OpenAPI document.
package docs

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/unifix/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

var page = template.Must(template.ParseFS(staticFS, "index.html"))

// NewModule creates a module at basePath whose index page renders the
// reference for the document served at specURL.
func NewModule(basePath, title, specURL string) *module.Module {
	return module.New(basePath, buildRouter(title, specURL))
}

func buildRouter(title, specURL string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page.Execute(w, map[string]string{
			"Title":   title,
			"SpecURL": specURL,
		})
	})

	return mux
}
