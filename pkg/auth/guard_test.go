package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestGuardNoSessionGoesToLogin(t *testing.T) {
	c := newTestClient(t, "http://unused")
	g := NewGuard(c, zerolog.Nop())

	if got := g.Init(context.Background()); got != StateLoginPrompt {
		t.Errorf("Init() = %v, want %v", got, StateLoginPrompt)
	}
	if g.User() != nil {
		t.Error("expected no user in login-prompt state")
	}
}

func TestGuardExpiredTokenRefreshedAndValidated(t *testing.T) {
	fresh := makeToken(t, time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			json.NewEncoder(w).Encode(map[string]string{"accessToken": fresh}) //nolint:errcheck
		case "/users/me":
			json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
				"id": "7b6cbb56-6f3a-4c8e-9a52-2f1f6a1f0f10", "username": "gulsen",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if err := c.Store().Save(makeToken(t, time.Now().Add(-time.Hour)), "refresh-1"); err != nil {
		t.Fatal(err)
	}
	g := NewGuard(c, zerolog.Nop())

	if got := g.Init(context.Background()); got != StateAuthenticated {
		t.Fatalf("Init() = %v, want %v", got, StateAuthenticated)
	}
	if g.User() == nil || g.User().Username != "gulsen" {
		t.Errorf("User() = %+v, want gulsen", g.User())
	}
}

func TestGuardRefreshRejectedGoesToLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if err := c.Store().Save(makeToken(t, time.Now().Add(-time.Hour)), "refresh-1"); err != nil {
		t.Fatal(err)
	}
	g := NewGuard(c, zerolog.Nop())

	if got := g.Init(context.Background()); got != StateLoginPrompt {
		t.Fatalf("Init() = %v, want %v", got, StateLoginPrompt)
	}
	if c.Store().Session().Authenticated() {
		t.Error("expected session cleared after failed validation")
	}
}

func TestGuardLogoutAlwaysLandsOnLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // unreachable backend

	c := newTestClient(t, srv.URL)
	if err := c.Store().Save(makeToken(t, time.Now().Add(time.Hour)), "refresh-1"); err != nil {
		t.Fatal(err)
	}
	g := NewGuard(c, zerolog.Nop())
	g.SetAuthenticated(nil)

	g.Logout(context.Background())

	if got := g.State(); got != StateLoginPrompt {
		t.Errorf("State() = %v, want %v", got, StateLoginPrompt)
	}
	if c.Store().Session().Authenticated() {
		t.Error("expected local session cleared regardless of server reachability")
	}
}
