package webapp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/askele/borealis/aurora"
	"github.com/askele/borealis/internal/testutil"
	"github.com/askele/borealis/session"
	"github.com/askele/borealis/webapp"
)

// acquireApp builds a handler over throwaway stores with one seeded
// user (test / 123456).
func acquireApp(ctx context.Context, t *testing.T, auroraURL string) (http.Handler, func()) {
	t.Helper()
	users, posts, cleanup := testutil.AcquireStores(ctx, t)
	testutil.SeedUser(ctx, t, users, "test", "123456")
	sessions, err := session.NewMemoryStore(time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	app, err := webapp.New(users, posts, sessions, aurora.NewClient(auroraURL), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return app.Handler(), cleanup
}

// login posts the seeded credentials and returns the session cookie.
func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	form := url.Values{}
	form.Set("username", "test")
	form.Set("password", "123456")
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("login should redirect, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/profile" {
		t.Fatalf("login should land on the profile, got %q", loc)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == webapp.CookieName {
			return c
		}
	}
	t.Fatal("login response carries no session cookie")
	return nil
}

// get fetches path with an optional session cookie.
func get(t *testing.T, h http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
