package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/yamp/internal/application"
)

type fakeSessionValidator struct {
	principal application.Principal
	err       error
}

func (f fakeSessionValidator) ValidateSession(ctx context.Context, token string) (application.Principal, error) {
	return f.principal, f.err
}

func TestAttachSession(t *testing.T) {
	t.Parallel()

	t.Run("attaches the principal for a valid token", func(t *testing.T) {
		t.Parallel()

		validator := fakeSessionValidator{principal: application.Principal{UserID: "user-1"}}
		captured := make(chan application.Principal, 1)

		handler := AttachSession(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				t.Errorf("expected a principal in the request context")
			}
			captured <- principal
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "valid-token"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
		if principal := <-captured; principal.UserID != "user-1" {
			t.Fatalf("expected principal user %q, got %q", "user-1", principal.UserID)
		}
	})

	t.Run("passes through without a token", func(t *testing.T) {
		t.Parallel()

		handler := AttachSession(fakeSessionValidator{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); ok {
				t.Errorf("expected no principal in the request context")
			}
			w.WriteHeader(http.StatusOK)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/meetings", nil))

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
	})

	t.Run("passes through when validation fails", func(t *testing.T) {
		t.Parallel()

		validator := fakeSessionValidator{err: application.ErrSessionExpired}
		handler := AttachSession(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); ok {
				t.Errorf("expected no principal for an expired session")
			}
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "stale-token"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
	})
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(fakeSessionValidator{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("expected the next handler not to be called")
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/meetings", nil))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		t.Parallel()

		validator := fakeSessionValidator{err: application.ErrInvalidCredentials}
		handler := RequireSession(validator, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("expected the next handler not to be called")
		}))

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", recorder.Code)
		}
	})

	t.Run("admits a valid token", func(t *testing.T) {
		t.Parallel()

		validator := fakeSessionValidator{principal: application.Principal{UserID: "user-1"}}
		handler := RequireSession(validator, nil)(next)

		req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", recorder.Code)
		}
	})
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if LoggerFromContext(r.Context()) == nil {
			t.Errorf("expected a request-scoped logger in the context")
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users", nil))

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", recorder.Code)
	}
}

func TestExtractTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*http.Request)
		expected string
	}{
		{
			name:     "no credentials",
			mutate:   func(r *http.Request) {},
			expected: "",
		},
		{
			name: "bearer header",
			mutate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer header-token")
			},
			expected: "header-token",
		},
		{
			name: "session cookie",
			mutate: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "session_token", Value: "cookie-token"})
			},
			expected: "cookie-token",
		},
		{
			name: "header wins over cookie",
			mutate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer header-token")
				r.AddCookie(&http.Cookie{Name: "session_token", Value: "cookie-token"})
			},
			expected: "header-token",
		},
		{
			name: "malformed header falls back to cookie",
			mutate: func(r *http.Request) {
				r.Header.Set("Authorization", "Token header-token")
				r.AddCookie(&http.Cookie{Name: "session_token", Value: "cookie-token"})
			},
			expected: "cookie-token",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
			tc.mutate(req)

			if token := extractTokenFromRequest(req); token != tc.expected {
				t.Fatalf("expected token %q, got %q", tc.expected, token)
			}
		})
	}
}
