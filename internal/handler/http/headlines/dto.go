package headlines

import (
	"time"

	"headlines/internal/domain/entity"
)

// QueryDTO echoes the validated query.
type QueryDTO struct {
	Keyword  string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
	Language string `json:"language"`
	Country  string `json:"country,omitempty"`
	Limit    int    `json:"limit"`
}

// ArticleDTO is the JSON form of an article.
type ArticleDTO struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ListResponse is the body of GET /api/headlines.
type ListResponse struct {
	Query    QueryDTO     `json:"query"`
	Count    int          `json:"count"`
	Articles []ArticleDTO `json:"articles"`
}

func newListResponse(q entity.Query, articles []entity.Article) ListResponse {
	dtos := make([]ArticleDTO, 0, len(articles))
	for _, a := range articles {
		dto := ArticleDTO{
			Title:       a.Title,
			Link:        a.Link,
			Source:      a.Source,
			Description: a.Description,
		}
		if !a.PublishedAt.IsZero() {
			published := a.PublishedAt.UTC()
			dto.PublishedAt = &published
		}
		dtos = append(dtos, dto)
	}

	return ListResponse{
		Query: QueryDTO{
			Keyword:  q.Keyword,
			Category: string(q.Category),
			Language: string(q.Language),
			Country:  string(q.Country),
			Limit:    q.Limit,
		},
		Count:    len(dtos),
		Articles: dtos,
	}
}
