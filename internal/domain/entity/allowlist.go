package entity

import (
	"sort"
	"strings"
)

// Category is a news category accepted by the upstream API.
type Category string

// Supported categories.
const (
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryGeneral       Category = "general"
	CategoryHealth        Category = "health"
	CategoryScience       Category = "science"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
)

var categories = map[Category]struct{}{
	CategoryBusiness:      {},
	CategoryEntertainment: {},
	CategoryGeneral:       {},
	CategoryHealth:        {},
	CategoryScience:       {},
	CategorySports:        {},
	CategoryTechnology:    {},
}

// IsValid reports whether c is one of the supported categories.
func (c Category) IsValid() bool {
	_, ok := categories[c]
	return ok
}

// Country is a 2-letter country code accepted by the upstream API.
type Country string

var countries = map[Country]struct{}{
	"us": {}, "gb": {}, "ca": {}, "de": {}, "fr": {}, "ro": {}, "in": {},
	"au": {}, "cn": {}, "jp": {}, "kr": {}, "za": {}, "br": {}, "mx": {},
}

// IsValid reports whether c is one of the supported country codes.
func (c Country) IsValid() bool {
	_, ok := countries[c]
	return ok
}

// Language is a 2-letter language code accepted by the upstream API.
type Language string

// DefaultLanguage is used when the caller does not ask for a language.
const DefaultLanguage Language = "en"

var languages = map[Language]struct{}{
	"en": {}, "de": {}, "fr": {}, "es": {}, "it": {}, "pt": {}, "ro": {},
	"nl": {}, "ru": {}, "ja": {}, "ko": {}, "zh": {}, "ar": {}, "hi": {},
}

// IsValid reports whether l is one of the supported language codes.
func (l Language) IsValid() bool {
	_, ok := languages[l]
	return ok
}

// ParseCategory normalizes s and looks it up in the category allow-list.
// An empty string yields the zero Category (no filter).
func ParseCategory(s string) (Category, error) {
	c := Category(normalize(s))
	if c == "" || c.IsValid() {
		return c, nil
	}
	return "", &ValidationError{
		Field:   "category",
		Message: "unknown category " + quote(s) + ", must be one of " + strings.Join(Categories(), ", "),
	}
}

// ParseCountry normalizes s and looks it up in the country allow-list.
// An empty string yields the zero Country (no filter).
func ParseCountry(s string) (Country, error) {
	c := Country(normalize(s))
	if c == "" || c.IsValid() {
		return c, nil
	}
	return "", &ValidationError{
		Field:   "country",
		Message: "unknown country code " + quote(s) + ", must be one of " + strings.Join(Countries(), ", "),
	}
}

// ParseLanguage normalizes s and looks it up in the language allow-list.
// An empty string yields DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	l := Language(normalize(s))
	if l == "" {
		return DefaultLanguage, nil
	}
	if l.IsValid() {
		return l, nil
	}
	return "", &ValidationError{
		Field:   "language",
		Message: "unknown language code " + quote(s) + ", must be one of " + strings.Join(Languages(), ", "),
	}
}

// Categories returns the supported categories in alphabetical order.
func Categories() []string {
	return sortedKeys(categories)
}

// Countries returns the supported country codes in alphabetical order.
func Countries() []string {
	return sortedKeys(countries)
}

// Languages returns the supported language codes in alphabetical order.
func Languages() []string {
	return sortedKeys(languages)
}

func sortedKeys[K ~string](m map[K]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func quote(s string) string {
	return "'" + s + "'"
}
