package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Details
// carries the individual field messages of a validation failure.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the closed set of domain errors to deterministic HTTP statuses.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: ve.Error(), Details: ve.Fields}
	}

	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, errorResponse{Error: "email and password are required"}
	case errors.Is(err, domain.ErrInvalidCredentials),
		// A stale token subject must read like any other auth failure.
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrEmailRegistered):
		return http.StatusBadRequest, errorResponse{Error: "email already registered"}
	case errors.Is(err, domain.ErrDuplicateSweet):
		return http.StatusBadRequest, errorResponse{Error: "duplicate sweet name already exists"}
	case errors.Is(err, domain.ErrSweetNotFound):
		return http.StatusNotFound, errorResponse{Error: "not found"}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, errorResponse{Error: "invalid quantity"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusBadRequest, errorResponse{Error: "not enough stock"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "server error"}
}
