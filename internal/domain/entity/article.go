// Package entity defines the core domain types for the headlines application.
// It contains the Article record returned by the news API, the validated Query
// built from user input, the closed allow-lists the query is checked against,
// and the error kinds shared by the adapter, the cache and the presentation layer.
package entity

import "time"

// Article represents a single news headline as returned by the upstream news API.
// Articles are produced by the API adapter and are read-only for every consumer.
type Article struct {
	Title       string
	Link        string
	Source      string
	PublishedAt time.Time
	Description string
}

// HasLink reports whether the article carries a usable link.
func (a Article) HasLink() bool {
	return a.Link != ""
}
