package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
	"github.com/questboard/questboard/internal/testutil"
)

func newBearerTestEnv(t *testing.T) (http.Handler, *auth.SQLTokenStore, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ts := auth.NewSQLTokenStore(db)
	us := store.NewUserStore(db)

	u, err := us.Create(context.Background(), "tester", "tester@example.com", "hunter22", "user")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	mw := auth.NewBearerTokenMiddleware(ts, us)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		if user == nil {
			t.Error("expected user in context")
			return
		}
		w.Write([]byte(user.Username))
	}))
	return handler, ts, u.ID
}

func TestBearerAuthenticate_ValidToken(t *testing.T) {
	handler, ts, userID := newBearerTestEnv(t)

	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ts.Create(context.Background(), userID, "valid", hash, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+plaintext)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "tester" {
		t.Errorf("body = %q, want %q", w.Body.String(), "tester")
	}
}

func TestBearerAuthenticate_MissingHeader(t *testing.T) {
	handler, _, _ := newBearerTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestBearerAuthenticate_UnknownToken(t *testing.T) {
	handler, _, _ := newBearerTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer qb_not-a-real-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestBearerAuthenticate_ExpiredToken(t *testing.T) {
	handler, ts, userID := newBearerTestEnv(t)

	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	expired := time.Now().Add(-1 * time.Hour)
	if _, err := ts.Create(context.Background(), userID, "expired", hash, &expired); err != nil {
		t.Fatalf("Create: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+plaintext)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestBearerAuthenticate_SessionCookieIgnored(t *testing.T) {
	handler, _, _ := newBearerTestEnv(t)

	// A session cookie alone never authenticates an API request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "some-session-token"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
