package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
	"github.com/mithaighar/sweetshop-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	return s.loginFn(ctx, email, password)
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Username != "alice" || input.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{
				ID: "64a1f0c2e3b4a5d6c7e8f901", Username: input.Username,
				Email: input.Email, Role: domain.RoleCustomer,
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, `{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != domain.RoleCustomer {
		t.Fatalf("expected role customer, got %v", user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
}

// A role supplied in the registration payload is dropped at bind time; the
// created account is always a customer.
func TestAuthHandler_Register_RoleIgnored(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			return &domain.User{Username: input.Username, Email: input.Email, Role: domain.RoleCustomer}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, `{"username":"mallory","email":"m@example.com","password":"secret1","role":"admin"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	user := resp["user"].(map[string]any)
	if user["role"] != domain.RoleCustomer {
		t.Fatalf("expected role customer, got %v", user["role"])
	}
}

// Every violated rule is reported in one aggregated error.
func TestAuthHandler_Register_ValidationAggregated(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{"username":"ab","email":"not-an-email","password":"123"}`)
	err := h.Register(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 field messages, got %d: %v", len(ve.Fields), ve.Fields)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailRegistered
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{"username":"bob","email":"bob@example.com","password":"secret1"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, string, error) {
			if email != "carol@example.com" || password != "s3cret1" {
				t.Fatalf("unexpected credentials: %s", email)
			}
			return "signed-token", domain.RoleAdmin, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, `{"email":"carol@example.com","password":"s3cret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] != "signed-token" || resp["role"] != domain.RoleAdmin {
		t.Fatalf("unexpected payload: %v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, string, error) {
			return "", "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{"email":"ghost@example.com","password":"nope123"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, string, error) {
			if email != "" || password != "" {
				t.Fatalf("expected empty credentials to reach service")
			}
			return "", "", domain.ErrMissingCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, `{}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
