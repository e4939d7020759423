package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123"},
		{name: "case insensitive scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "whitespace only", header: "   ", wantErr: true},
		{name: "no scheme", header: "abc123", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
		{name: "trailing parts", header: "Bearer abc 123", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := bearerToken(tc.header)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for header %q", tc.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tc.want {
				t.Fatalf("unexpected token: got %q, want %q", token, tc.want)
			}
		})
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	handlerCalled := false
	protected := router.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	protected(rec, req)

	if handlerCalled {
		t.Fatalf("handler should not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	handlerCalled := false
	protected := router.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	protected(rec, req)

	if handlerCalled {
		t.Fatalf("handler should not run with an invalid token")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	router, svc := newTestRouter(t)

	user, err := svc.Register(context.Background(), "Ana", "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(context.Background(), "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	protected := router.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		identity, ok := identityFromContext(req.Context())
		if !ok {
			t.Fatalf("expected identity in context")
		}
		if identity.UserID != user.ID {
			t.Fatalf("unexpected user id: got %s, want %s", identity.UserID, user.ID)
		}
		if identity.Email != "ana@x.com" {
			t.Fatalf("unexpected email: %s", identity.Email)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestExpiredAndTamperedTokensFailIdentically(t *testing.T) {
	router, svc := newTestRouter(t)

	if _, err := svc.Register(context.Background(), "Ana", "ana@x.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(context.Background(), "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	tampered := token + "zz"

	expiredRouter, expiredSvc := newTestRouterWithTTL(t, -time.Minute)
	if _, err := expiredSvc.Register(context.Background(), "Bea", "bea@x.com", "secret2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	expired, err := expiredSvc.Login(context.Background(), "bea@x.com", "secret2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	tamperedBody := doRequest(t, router, http.MethodGet, "/me", nil, tampered)
	expiredBody := doRequest(t, expiredRouter, http.MethodGet, "/me", nil, expired)

	if tamperedBody.status != http.StatusForbidden || expiredBody.status != http.StatusForbidden {
		t.Fatalf("expected 403 for both, got %d and %d", tamperedBody.status, expiredBody.status)
	}
	if tamperedBody.errMsg() != expiredBody.errMsg() {
		t.Fatalf("failure bodies differ: %q vs %q", tamperedBody.errMsg(), expiredBody.errMsg())
	}
}
