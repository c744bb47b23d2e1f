// Package handler serves the browser-facing pages and HTMX partials. Every
// handler reads from the remote API, renders HTML, and broadcasts a sync
// message when it changed something, so other open tabs can refresh.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avmoreira/despensa-web/web"
)

// Renderer executes the embedded templates. Pages are addressed by file name
// (products.html), partials by their define name (product-list).
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	funcs := template.FuncMap{
		"money":   money,
		"datefmt": datefmt,
		"deref64": func(v *int64) int64 { return *v },
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(web.Templates, "templates/*.html"))
	return &Renderer{templates: tmpl, logger: logger}
}

func (rd *Renderer) Page(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		rd.logger.Error("render page", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (rd *Renderer) Partial(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.templates.ExecuteTemplate(w, name, data); err != nil {
		rd.logger.Error("render partial", "template", name, "error", err)
		fmt.Fprint(w, `<div class="alert" role="alert">Erro interno.</div>`)
	}
}

// Alert retargets the response at the page's alert region so a failed action
// leaves the triggering element untouched.
func (rd *Renderer) Alert(w http.ResponseWriter, msg string) {
	w.Header().Set("HX-Retarget", "#alerts")
	w.Header().Set("HX-Reswap", "innerHTML")
	rd.Partial(w, "alert", map[string]any{"Message": msg})
}

// money formats a value in reais, with a missing price shown as zero.
func money(v any) string {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case *float64:
		if n != nil {
			f = *n
		}
	case int:
		f = float64(n)
	}
	return "R$ " + strings.Replace(fmt.Sprintf("%.2f", f), ".", ",", 1)
}

func datefmt(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Local().Format("02/01/2006")
	case *time.Time:
		if t != nil {
			return t.Local().Format("02/01/2006")
		}
	}
	return ""
}
