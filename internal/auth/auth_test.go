package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	a := New("test-secret", "")

	token, err := a.GenerateToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	principal, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if principal != "alice" {
		t.Fatalf("expected principal alice, got %q", principal)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	a := New("test-secret", "")

	expired := New("test-secret", "")
	expiredToken, err := expired.GenerateToken("alice", -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	wrongKey := New("other-secret", "")
	foreignToken, err := wrongKey.GenerateToken("alice", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expiredToken},
		{"wrong key", foreignToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := a.ValidateToken(tc.token); err == nil {
				t.Fatalf("expected validation failure")
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	a := New("test-secret", "")
	var seen string
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/habits", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := a.GenerateToken("alice", time.Hour)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if seen != "alice" {
			t.Fatalf("expected principal alice in context, got %q", seen)
		}
	})
}

func TestMiddlewareDevPrincipal(t *testing.T) {
	a := New("", "dev")
	var seen string
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/habits", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen != "dev" {
		t.Fatalf("expected dev principal, got %q", seen)
	}
}
