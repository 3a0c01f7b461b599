package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"headlines/internal/domain/entity"
)

func articles() []entity.Article {
	return []entity.Article{
		{
			Title:       "Markets open higher",
			Link:        "https://example.com/markets",
			Source:      "Example Wire",
			PublishedAt: time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC),
		},
		{
			Title:       "Rover finds water",
			Link:        "https://example.com/rover",
			Source:      "Space Daily",
			PublishedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			Title:  "Cup final tonight",
			Source: "",
		},
	}
}

func TestRender_RowsInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, articles()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, Title))
	for _, h := range []string{"#", "Title", "Source", "Published At"} {
		assert.Contains(t, out, h)
	}

	first := strings.Index(out, "Markets open higher")
	second := strings.Index(out, "Rover finds water")
	third := strings.Index(out, "Cup final tonight")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "every title is rendered")
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	rows := 0
	for _, line := range strings.Split(out, "\n") {
		for _, a := range articles() {
			if strings.Contains(line, a.Title) {
				rows++
			}
		}
	}
	assert.Equal(t, 3, rows, "one table row per article")

	assert.Contains(t, out, "2024-05-01 09:15:00")
	assert.Contains(t, out, "Unknown source")
	assert.Contains(t, out, "Unknown date")
}

func TestRender_URLList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, articles()))
	out := buf.String()

	urls := out[strings.Index(out, "URLs:"):]
	assert.Contains(t, urls, "1. https://example.com/markets")
	assert.Contains(t, urls, "2. https://example.com/rover")
	assert.NotContains(t, urls, "3. ", "articles without a link are skipped")
}

func TestRender_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, articles()))
	assert.NotContains(t, buf.String(), "\x1b[", "no ANSI escapes when writing to a buffer")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.Equal(t, EmptyMessage+"\n", buf.String())
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderError(&buf, errors.New("network error: GET /latest: connection refused")))
	assert.Equal(t, "Error: network error: GET /latest: connection refused\n", buf.String())
}

func TestTitleCell(t *testing.T) {
	assert.Equal(t, "No title", titleCell("  "))
	assert.Equal(t, "two words", titleCell("two\n  words"))

	long := strings.Repeat("x", 200)
	got := titleCell(long)
	assert.Equal(t, maxTitleLength, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}
