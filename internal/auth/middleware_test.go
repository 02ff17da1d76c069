package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func protected(secret []byte) http.Handler {
	return Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "no claims", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(claims.UserID))
	}))
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Issue(secret, Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(secret).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "u1" {
		t.Errorf("body = %q, want claims user id", rec.Body.String())
	}
}

func TestMiddlewareRejectsMissingAndGarbageTokens(t *testing.T) {
	secret := []byte("test-secret")

	for _, header := range []string{"", "Bearer not-a-token", "Basic dXNlcjpwYXNz"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected(secret).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestMiddlewareAllowsQueryTokenOnlyForStreamUpgrade(t *testing.T) {
	secret := []byte("test-secret")
	token, err := Issue(secret, Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stream?token="+token, nil)
	req.Header.Set("Upgrade", "websocket")
	rec := httptest.NewRecorder()
	protected(secret).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("stream upgrade with query token: status = %d, want 200", rec.Code)
	}

	// Same token on a regular endpoint must not authenticate.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/orders?token="+token, nil)
	rec = httptest.NewRecorder()
	protected(secret).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("query token on non-stream route: status = %d, want 401", rec.Code)
	}
}
