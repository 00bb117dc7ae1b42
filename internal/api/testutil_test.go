package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/questboard/questboard/internal/api"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
	"github.com/questboard/questboard/internal/testutil"
)

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router     http.Handler
	QuestStore *store.QuestStore
	UserStore  *store.UserStore
	TokenStore *auth.SQLTokenStore
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	qs := store.NewQuestStore(db)
	us := store.NewUserStore(db)
	ts := auth.NewSQLTokenStore(db)

	router := api.NewAPIRouter(api.Deps{
		BearerMiddleware: auth.NewBearerTokenMiddleware(ts, us),
		QuestStore:       qs,
		UserStore:        us,
	})

	return &testEnv{
		Router:     router,
		QuestStore: qs,
		UserStore:  us,
		TokenStore: ts,
	}
}

// seedUser creates a user and returns the user record.
func seedUser(t *testing.T, env *testEnv, username string) *store.User {
	t.Helper()
	u, err := env.UserStore.Create(context.Background(), username, username+"@example.com", "hunter22", "user")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken creates a real API token for a user and returns the plaintext Bearer value.
func seedToken(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	_, err = env.TokenStore.Create(context.Background(), userID, "test-token", hash, nil)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return plaintext
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
