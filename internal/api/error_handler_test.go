package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing credentials", domain.ErrMissingCredentials, http.StatusBadRequest, "email and password are required"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"stale token user", domain.ErrUserNotFound, http.StatusUnauthorized, "invalid credentials"},
		{"duplicate email", domain.ErrEmailRegistered, http.StatusBadRequest, "email already registered"},
		{"duplicate sweet", domain.ErrDuplicateSweet, http.StatusBadRequest, "duplicate sweet name already exists"},
		{"sweet not found", domain.ErrSweetNotFound, http.StatusNotFound, "not found"},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest, "invalid quantity"},
		{"insufficient stock", domain.ErrInsufficientStock, http.StatusBadRequest, "not enough stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := resolveError(tc.err, zerolog.Nop(), testContext())
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if body.Error != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, body.Error)
			}
		})
	}
}

// Unknown-email and wrong-password failures both flow through the handler as
// ErrInvalidCredentials, so the rendered status and message are identical.
func TestResolveError_UniformAuthFailure(t *testing.T) {
	codeA, bodyA := resolveError(domain.ErrInvalidCredentials, zerolog.Nop(), testContext())
	codeB, bodyB := resolveError(domain.ErrUserNotFound, zerolog.Nop(), testContext())
	if codeA != codeB || bodyA.Error != bodyB.Error {
		t.Fatalf("auth failures distinguishable: %d %q vs %d %q", codeA, bodyA.Error, codeB, bodyB.Error)
	}
}

func TestResolveError_ValidationDetails(t *testing.T) {
	err := domain.NewValidationError("name is required", "price must be greater than 0")
	code, body := resolveError(err, zerolog.Nop(), testContext())
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if len(body.Details) != 2 {
		t.Fatalf("expected 2 details, got %v", body.Details)
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	code, body := resolveError(echo.NewHTTPError(http.StatusForbidden, "admins only"), zerolog.Nop(), testContext())
	if code != http.StatusForbidden || body.Error != "admins only" {
		t.Fatalf("unexpected mapping: %d %q", code, body.Error)
	}
}

// Wrapped domain errors still map to their status.
func TestResolveError_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("update sweet"), domain.ErrSweetNotFound)
	code, _ := resolveError(wrapped, zerolog.Nop(), testContext())
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestResolveError_UnexpectedIsOpaque(t *testing.T) {
	code, body := resolveError(errors.New("mongo: connection reset"), zerolog.Nop(), testContext())
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Error != "server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
