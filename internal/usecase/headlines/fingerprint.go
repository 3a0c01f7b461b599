package headlines

import (
	"net/url"
	"strconv"
	"strings"

	"headlines/internal/domain/entity"
	"headlines/internal/utils/text"
)

// Fingerprint returns the cache key for q.
// Two queries that differ only in letter case, surrounding whitespace or the
// spacing inside the keyword share a fingerprint. Keys are emitted in sorted
// order, so the result does not depend on how the query was assembled.
func Fingerprint(q entity.Query) string {
	v := url.Values{}
	v.Set("category", strings.ToLower(string(q.Category)))
	v.Set("country", strings.ToLower(string(q.Country)))
	lang := strings.ToLower(string(q.Language))
	if lang == "" {
		lang = string(entity.DefaultLanguage)
	}
	v.Set("language", lang)
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("q", strings.ToLower(text.CollapseSpace(q.Keyword)))
	return v.Encode()
}
