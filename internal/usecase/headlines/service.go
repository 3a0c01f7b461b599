// Package headlines implements the headline lookup use case: validate the
// request, then answer it from the response cache or the news API.
package headlines

import (
	"context"

	"headlines/internal/domain/entity"
)

// Service resolves raw user input into headlines.
type Service struct {
	cache *Cache
}

// NewService creates a service that owns cache for its whole lifetime.
func NewService(cache *Cache) *Service {
	return &Service{cache: cache}
}

// Headlines validates in and returns the matching articles.
// Invalid input fails with *entity.ValidationError before the cache or the
// news API is consulted. The validated Query is returned even when fetching fails.
func (s *Service) Headlines(ctx context.Context, in entity.QueryInput) (entity.Query, []entity.Article, error) {
	q, err := entity.NewQuery(in)
	if err != nil {
		return entity.Query{}, nil, err
	}

	articles, err := s.cache.GetOrFetch(ctx, q)
	if err != nil {
		return q, nil, err
	}
	return q, articles, nil
}

// CacheLen returns the number of live cache entries.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}
