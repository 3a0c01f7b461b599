package respond

import (
	"regexp"
)

var (
	// apikey=... in a query string, encoded or not.
	apiKeyParamPattern = regexp.MustCompile(`(?i)(apikey=)[^&\s"']+`)

	// Bare NewsData keys.
	newsDataKeyPattern = regexp.MustCompile(`pub_[A-Za-z0-9]{8,}`)

	// Credentials embedded in a URL.
	urlPasswordPattern = regexp.MustCompile(`://([^:/\s]+):([^@/\s]+)@`)
)

// SanitizeError returns the error message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error())
}

// SanitizeString masks credentials in s.
func SanitizeString(s string) string {
	s = apiKeyParamPattern.ReplaceAllString(s, "${1}****")
	s = newsDataKeyPattern.ReplaceAllString(s, "pub_****")
	s = urlPasswordPattern.ReplaceAllString(s, "://$1:****@")
	return s
}
