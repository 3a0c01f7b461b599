// Package resilience groups fault tolerance helpers for calls to external services.
//
// The circuitbreaker subpackage wraps github.com/sony/gobreaker so that an
// unreachable news API fails fast instead of tying up every request:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsDataConfig())
//	articles, err := circuitbreaker.Run(cb, func() ([]entity.Article, error) {
//	    return fetch(ctx)
//	})
package resilience
