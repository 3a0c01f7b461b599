package headlines

import (
	"errors"
	"net/http"

	"headlines/internal/domain/entity"
	"headlines/internal/handler/http/respond"
)

const (
	msgUnavailable = "The news service is unavailable right now. Please try again shortly."
	msgRateLimited = "The news service rate limit was reached. Please try again later."
	msgInternal    = "Something went wrong while loading headlines."
)

// classify maps an error to the HTTP status and the message shown to the user.
func classify(err error) (int, string) {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var clientErr *entity.ClientError
	if errors.As(err, &clientErr) {
		if clientErr.RateLimited() {
			return http.StatusServiceUnavailable, msgRateLimited
		}
		return http.StatusBadGateway, respond.SanitizeString(clientErr.Error())
	}

	var netErr *entity.NetworkError
	if errors.As(err, &netErr) {
		return http.StatusServiceUnavailable, msgUnavailable
	}

	return http.StatusInternalServerError, msgInternal
}
