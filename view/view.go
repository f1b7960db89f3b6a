// Package view is the typed boundary between fetched data and presentation:
// handlers build view models here and render them through embedded templates,
// never by splicing HTML strings.
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Load parses every embedded template. The returned set is handed to gin via
// SetHTMLTemplate.
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"excerpt": Excerpt,
	}).ParseFS(templateFS, "templates/*.tmpl")
}

// TruncateHash shortens a hash for display, keeping the leading n characters.
func TruncateHash(hash string, n int) string {
	if n <= 0 || len(hash) <= n {
		return hash
	}
	return hash[:n] + "…"
}

// Excerpt shortens clause text for card display.
func Excerpt(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return text
	}
	return text[:n] + "…"
}
