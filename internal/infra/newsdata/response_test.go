package newsdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePubDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		tz    string
		want  time.Time
	}{
		{"utc default", "2024-05-01 12:30:00", "", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{"explicit utc", "2024-05-01 12:30:00", "UTC", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{"unknown zone falls back to utc", "2024-05-01 12:30:00", "Mars/Olympus", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{"empty", "", "UTC", time.Time{}},
		{"malformed", "01/05/2024", "UTC", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePubDate(tt.value, tt.tz)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain   text\n here", "plain text here"},
		{"<p>Hello <i>world</i></p>", "Hello world"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<ul><li>one</li><li>two</li></ul>", "onetwo"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.input))
		})
	}
}

func TestResult_ToArticle_SourceFallback(t *testing.T) {
	a := result{Title: "t", SourceID: "bbc"}.toArticle()
	assert.Equal(t, "bbc", a.Source)

	a = result{Title: "t", SourceID: "bbc", SourceName: "BBC News"}.toArticle()
	assert.Equal(t, "BBC News", a.Source)
}
