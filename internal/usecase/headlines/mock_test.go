package headlines

import (
	"context"
	"sync"
	"sync/atomic"

	"headlines/internal/domain/entity"
)

// stubFetcher records every call and returns the configured articles or error.
type stubFetcher struct {
	mu       sync.Mutex
	articles []entity.Article
	err      error
	queries  []entity.Query
	calls    atomic.Int32
	// gate, when set, blocks Fetch until closed.
	gate chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context, q entity.Query) ([]entity.Article, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.articles, nil
}

func (f *stubFetcher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func sampleArticles(n int) []entity.Article {
	out := make([]entity.Article, n)
	for i := range out {
		out[i] = entity.Article{
			Title:  "Headline " + string(rune('A'+i)),
			Link:   "https://example.com/" + string(rune('a'+i)),
			Source: "Example",
		}
	}
	return out
}
