package newsdata

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"headlines/internal/domain/entity"
	"headlines/internal/utils/text"
)

// pubDateLayout is the layout NewsData uses for pubDate.
const pubDateLayout = "2006-01-02 15:04:05"

// envelope is the top-level NewsData response. Results is an array on success
// and an object describing the failure when Status is "error".
type envelope struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Results      json.RawMessage `json:"results"`
	NextPage     string          `json:"nextPage"`
}

type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type result struct {
	ArticleID   string `json:"article_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	PubDateTZ   string `json:"pubDateTZ"`
	SourceID    string `json:"source_id"`
	SourceName  string `json:"source_name"`
}

func (r result) toArticle() entity.Article {
	source := strings.TrimSpace(r.SourceName)
	if source == "" {
		source = strings.TrimSpace(r.SourceID)
	}
	return entity.Article{
		Title:       strings.TrimSpace(r.Title),
		Link:        strings.TrimSpace(r.Link),
		Source:      source,
		PublishedAt: parsePubDate(r.PubDate, r.PubDateTZ),
		Description: plainText(r.Description),
	}
}

// parsePubDate returns the zero time when the value is missing or malformed.
func parsePubDate(value, tz string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	t, err := time.ParseInLocation(pubDateLayout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// plainText strips markup from a description and collapses whitespace.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return text.CollapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return text.CollapseSpace(s)
	}
	return text.CollapseSpace(doc.Text())
}
