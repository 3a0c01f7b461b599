// Package page renders headlines as a standalone HTML document.
package page

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"headlines/internal/domain/entity"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// DefaultTitle is the page heading.
const DefaultTitle = "Latest News Headlines"

// EmptyMessage is shown when a query matched nothing.
const EmptyMessage = "No news articles found matching your criteria."

// View is everything the page shows. Articles are ignored when Error is set.
type View struct {
	Input    entity.QueryInput
	Articles []entity.Article
	Error    string
	Version  string
}

type viewData struct {
	View
	Title        string
	EmptyMessage string
	Categories   []string
	Countries    []string
	Languages    []string
	MinLimit     int
	MaxLimit     int
}

// Render writes the page for v to w.
func Render(w io.Writer, v View) error {
	v.Input.Category = strings.ToLower(strings.TrimSpace(v.Input.Category))
	v.Input.Country = strings.ToLower(strings.TrimSpace(v.Input.Country))
	v.Input.Language = strings.ToLower(strings.TrimSpace(v.Input.Language))
	if v.Input.Language == "" {
		v.Input.Language = string(entity.DefaultLanguage)
	}
	if v.Error != "" {
		v.Articles = nil
	}

	return pageTemplate.Execute(w, viewData{
		View:         v,
		Title:        DefaultTitle,
		EmptyMessage: EmptyMessage,
		Categories:   entity.Categories(),
		Countries:    entity.Countries(),
		Languages:    entity.Languages(),
		MinLimit:     entity.MinLimit,
		MaxLimit:     entity.MaxLimit,
	})
}
