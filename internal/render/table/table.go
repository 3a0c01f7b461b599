// Package table renders headlines for the terminal as a lipgloss table followed
// by a numbered list of article URLs.
package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"headlines/internal/domain/entity"
	"headlines/internal/utils/text"
)

// Title is printed above the table.
const Title = "Latest News Headlines"

// EmptyMessage is printed instead of a table when there are no articles.
const EmptyMessage = "No news articles found matching your criteria."

const (
	timeLayout     = "2006-01-02 15:04:05"
	maxTitleLength = 90

	noTitle   = "No title"
	noSource  = "Unknown source"
	noPubDate = "Unknown date"
)

var (
	colorBorder = lipgloss.AdaptiveColor{Light: "#2AA1B3", Dark: "#5FD7FF"}
	colorIndex  = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#FFD75F"}
	colorSource = lipgloss.AdaptiveColor{Light: "#8E3FA8", Dark: "#D787FF"}
	colorDate   = lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#87D787"}
	colorLink   = lipgloss.AdaptiveColor{Light: "#1F5FBF", Dark: "#5F87FF"}
	colorError  = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF5F5F"}
)

// styles are bound to a renderer so colors follow the output's capabilities.
type styles struct {
	title  lipgloss.Style
	border lipgloss.Style
	header lipgloss.Style
	index  lipgloss.Style
	cell   lipgloss.Style
	source lipgloss.Style
	date   lipgloss.Style
	label  lipgloss.Style
	link   lipgloss.Style
	error  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(colorBorder),
		border: r.NewStyle().Foreground(colorBorder),
		header: r.NewStyle().Bold(true).Padding(0, 1),
		index:  r.NewStyle().Bold(true).Foreground(colorIndex).Padding(0, 1).Align(lipgloss.Right),
		cell:   r.NewStyle().Bold(true).Padding(0, 1),
		source: r.NewStyle().Foreground(colorSource).Padding(0, 1),
		date:   r.NewStyle().Foreground(colorDate).Padding(0, 1),
		label:  r.NewStyle().Bold(true).Underline(true),
		link:   r.NewStyle().Foreground(colorLink).Underline(true),
		error:  r.NewStyle().Bold(true).Foreground(colorError),
	}
}

// Render writes the headline table for articles to w, one row per article in
// order, followed by the URL list. With no articles only EmptyMessage is written.
func Render(w io.Writer, articles []entity.Article) error {
	st := newStyles(w)

	if len(articles) == 0 {
		_, err := fmt.Fprintln(w, st.error.Render(EmptyMessage))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		BorderRow(true).
		Headers("#", "Title", "Source", "Published At").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			switch col {
			case 0:
				return st.index
			case 2:
				return st.source
			case 3:
				return st.date
			default:
				return st.cell
			}
		})

	for i, a := range articles {
		t.Row(strconv.Itoa(i+1), titleCell(a.Title), sourceCell(a.Source), dateCell(a))
	}

	var b strings.Builder
	b.WriteString(st.title.Render(Title))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(st.label.Render("URLs:"))
	b.WriteString("\n")
	for i, a := range articles {
		if !a.HasLink() {
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, st.link.Render(a.Link))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderError writes a user-facing error message to w.
func RenderError(w io.Writer, err error) error {
	st := newStyles(w)
	_, werr := fmt.Fprintln(w, st.error.Render("Error: "+err.Error()))
	return werr
}

func titleCell(title string) string {
	title = text.CollapseSpace(title)
	if title == "" {
		return noTitle
	}
	return text.Truncate(title, maxTitleLength)
}

func sourceCell(source string) string {
	if source == "" {
		return noSource
	}
	return source
}

func dateCell(a entity.Article) string {
	if a.PublishedAt.IsZero() {
		return noPubDate
	}
	return a.PublishedAt.Format(timeLayout)
}
