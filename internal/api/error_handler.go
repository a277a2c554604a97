package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

// errorBody is the canonical error envelope for all API failures.
type errorBody struct {
	Message       string   `json:"message"`
	Error         string   `json:"error"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// statusByCode maps wire error codes to HTTP status codes.
var statusByCode = map[string]int{
	domain.CodeMissingFields:       http.StatusBadRequest,
	domain.CodeMissingCredentials:  http.StatusBadRequest,
	domain.CodeInvalidEmail:        http.StatusBadRequest,
	domain.CodeWeakPassword:        http.StatusBadRequest,
	domain.CodeInvalidAmount:       http.StatusBadRequest,
	domain.CodeInvalidAmountFormat: http.StatusBadRequest,
	domain.CodeNoChanges:           http.StatusBadRequest,
	domain.CodeInvalidCredentials:  http.StatusUnauthorized,
	domain.CodeNotFound:            http.StatusNotFound,
	domain.CodeUserNotFound:        http.StatusNotFound,
	domain.CodeUserExists:          http.StatusConflict,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps coded domain errors to their HTTP status and {message, error}
//     envelope.
//   - Logs unexpected errors internally without leaking detail to the
//     client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorBody) {
	if ae, ok := domain.AsAPIError(err); ok {
		status, known := statusByCode[ae.Code]
		if !known {
			status = http.StatusBadRequest
		}
		return status, errorBody{Message: ae.Message, Error: ae.Code, MissingFields: ae.Fields}
	}

	// Echo's own errors: bind failures, router 404s, auth middleware
	// rejections.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorBody{Message: fmt.Sprintf("%v", he.Message), Error: codeForStatus(he.Code)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorBody{Message: "Internal server error", Error: "internal_error"}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_payload"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return domain.CodeNotFound
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal_error"
	}
}
