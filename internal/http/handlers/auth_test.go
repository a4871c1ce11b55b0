package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paquexpress-service/internal/apperr"
	"paquexpress-service/internal/domain"
	"paquexpress-service/internal/http/handlers"
)

type stubAuthUsecase struct {
	loginFn func(ctx context.Context, email, password string) (domain.Session, error)
	hashFn  func(plain string) (string, error)
}

func (s *stubAuthUsecase) Login(ctx context.Context, email, password string) (domain.Session, error) {
	if s.loginFn == nil {
		panic("Login not expected in this test")
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthUsecase) HashPassword(plain string) (string, error) {
	if s.hashFn == nil {
		panic("HashPassword not expected in this test")
	}
	return s.hashFn(plain)
}

type loginBody struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

func TestAuthHandler_Login_OK(t *testing.T) {
	t.Parallel()

	exp := time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	uc := &stubAuthUsecase{
		loginFn: func(_ context.Context, email, password string) (domain.Session, error) {
			require.Equal(t, "agent@example.com", email)
			require.Equal(t, "secret123", password)
			return domain.Session{
				User:      domain.User{ID: 5, Name: "Agent", Email: email, Role: domain.RoleAgent},
				Token:     "jwt",
				TokenType: "bearer",
				ExpiresAt: exp,
			}, nil
		},
	}
	h := handlers.NewAuthHandler(testLogger(), uc)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"agent@example.com","password":"secret123"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[loginBody](t, rr)
	require.Equal(t, loginBody{
		ID: 5, Name: "Agent", Email: "agent@example.com", Role: "agente",
		Token: "jwt", TokenType: "bearer", ExpiresAt: exp,
	}, body)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		body   string
		err    error
		status int
		msg    string
	}{
		{"bad credentials", `{"email":"a@b.c","password":"x"}`, apperr.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"missing fields", `{"email":"","password":""}`, apperr.ErrInvalid, http.StatusBadRequest, "email and password are required"},
		{"store failure", `{"email":"a@b.c","password":"x"}`, errors.New("db down"), http.StatusInternalServerError, "internal error"},
		{"broken json", `{"email":`, nil, http.StatusBadRequest, "invalid json"},
		{"unknown field", `{"email":"a@b.c","password":"x","admin":true}`, nil, http.StatusBadRequest, "invalid json"},
		{"trailing data", `{"email":"a@b.c","password":"x"} {}`, nil, http.StatusBadRequest, "invalid json: trailing data"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uc := &stubAuthUsecase{
				loginFn: func(context.Context, string, string) (domain.Session, error) {
					require.NotNil(t, tc.err, "usecase must not be called")
					return domain.Session{}, tc.err
				},
			}
			h := handlers.NewAuthHandler(testLogger(), uc)

			rr := httptest.NewRecorder()
			h.Login(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tc.body)))

			require.Equal(t, tc.status, rr.Code)
			require.Equal(t, tc.msg, decodeBody[handlers.ErrorResponse](t, rr).Error)
		})
	}
}

func TestAuthHandler_HashPassword(t *testing.T) {
	t.Parallel()

	uc := &stubAuthUsecase{
		hashFn: func(plain string) (string, error) {
			if plain == "" {
				return "", apperr.ErrInvalid
			}
			return "hashed-" + plain, nil
		},
	}
	h := handlers.NewAuthHandler(testLogger(), uc)

	rr := httptest.NewRecorder()
	h.HashPassword(rr, httptest.NewRequest(http.MethodPost, "/util/hash-password?password=secret123", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody[map[string]string](t, rr)
	require.Equal(t, "secret123", body["password"])
	require.Equal(t, "hashed-secret123", body["hash"])

	rr = httptest.NewRecorder()
	h.HashPassword(rr, httptest.NewRequest(http.MethodPost, "/util/hash-password", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
