package entity

import (
	"fmt"
	"strings"
)

// Limit bounds for the number of headlines a single query may ask for.
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 10

	maxKeywordLength = 512
)

// QueryInput is the raw, unvalidated query as received from command-line flags
// or URL query parameters.
type QueryInput struct {
	Keyword  string
	Category string
	Language string
	Country  string
	Limit    int
}

// Query is a validated headline request. It is only built through NewQuery and
// is never mutated afterwards.
type Query struct {
	Keyword  string
	Category Category
	Language Language
	Country  Country
	Limit    int
}

// NewQuery validates in against the allow-lists and the limit range and returns
// the normalized Query. Category, country and language are trimmed and
// lower-cased; the language defaults to DefaultLanguage.
// The first failing field is reported as a *ValidationError.
func NewQuery(in QueryInput) (Query, error) {
	category, err := ParseCategory(in.Category)
	if err != nil {
		return Query{}, err
	}

	language, err := ParseLanguage(in.Language)
	if err != nil {
		return Query{}, err
	}

	country, err := ParseCountry(in.Country)
	if err != nil {
		return Query{}, err
	}

	if in.Limit < MinLimit || in.Limit > MaxLimit {
		return Query{}, &ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinLimit, MaxLimit, in.Limit),
		}
	}

	keyword := strings.TrimSpace(in.Keyword)
	if len(keyword) > maxKeywordLength {
		return Query{}, &ValidationError{
			Field:   "q",
			Message: fmt.Sprintf("must not exceed %d characters", maxKeywordLength),
		}
	}

	return Query{
		Keyword:  keyword,
		Category: category,
		Language: language,
		Country:  country,
		Limit:    in.Limit,
	}, nil
}

// String renders the query in a compact human-readable form for titles and logs.
func (q Query) String() string {
	parts := []string{"language=" + string(q.Language)}
	if q.Category != "" {
		parts = append(parts, "category="+string(q.Category))
	}
	if q.Country != "" {
		parts = append(parts, "country="+string(q.Country))
	}
	if q.Keyword != "" {
		parts = append(parts, fmt.Sprintf("q=%q", q.Keyword))
	}
	parts = append(parts, fmt.Sprintf("limit=%d", q.Limit))
	return strings.Join(parts, " ")
}
