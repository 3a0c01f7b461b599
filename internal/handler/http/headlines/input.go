package headlines

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"headlines/internal/domain/entity"
)

// parseInput reads the query parameters of r. Absent values take the defaults;
// a parameter sent empty clears the default filter. A limit that is not an
// integer is reported as a validation error.
func parseInput(r *http.Request, defaults entity.QueryInput) (entity.QueryInput, error) {
	params := r.URL.Query()

	in := entity.QueryInput{
		Keyword:  param(params, "q", defaults.Keyword),
		Category: param(params, "category", defaults.Category),
		Language: params.Get("language"),
		Country:  param(params, "country", defaults.Country),
		Limit:    defaults.Limit,
	}
	if strings.TrimSpace(in.Language) == "" {
		in.Language = defaults.Language
	}

	if raw := strings.TrimSpace(params.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return in, &entity.ValidationError{Field: "limit", Message: "must be an integer, got '" + raw + "'"}
		}
		in.Limit = limit
	}
	return in, nil
}

func param(params url.Values, key, fallback string) string {
	if !params.Has(key) {
		return fallback
	}
	return params.Get(key)
}
