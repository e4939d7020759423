package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSendsCredentialsAndReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost || req.URL.Path != "/login" {
			t.Fatalf("unexpected request: %s %s", req.Method, req.URL.Path)
		}
		var payload struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if payload.Email != "ana@x.com" || payload.Password != "secret1" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	cli, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	token, err := cli.Login(context.Background(), "ana@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestListUsersSetsBearerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if got := req.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "u1", "name": "Ana", "email": "ana@x.com"}})
	}))
	defer srv.Close()

	cli, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	users, err := cli.ListUsers(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestErrorResponsesMapToAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
	}))
	defer srv.Close()

	cli, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = cli.Me(context.Background(), "bad-token")
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusForbidden || apiErr.Message != "invalid token" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestNewDefaultsScheme(t *testing.T) {
	cli, err := New("localhost:4000")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if cli.baseURL != "http://localhost:4000" {
		t.Fatalf("unexpected base url: %q", cli.baseURL)
	}
}
