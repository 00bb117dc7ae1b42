package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/questboard/questboard/internal/metrics"
	"github.com/questboard/questboard/internal/store"
)

type contextKey string

const UserContextKey contextKey = "user"

// Middleware provides HTTP middleware for authentication and authorization.
type Middleware struct {
	sessions *scs.SessionManager
	users    *store.UserStore
}

// NewMiddleware creates a new auth Middleware.
func NewMiddleware(sm *scs.SessionManager, us *store.UserStore) *Middleware {
	return &Middleware{sessions: sm, users: us}
}

// RequireAuth redirects to the login page if no valid session exists. The
// requested URI rides along as the `return` query parameter so login can
// forward the user back afterwards.
// On success, sets the *store.User on the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := m.sessions.GetString(r.Context(), SessionUserIDKey)
		if userID == "" {
			http.Redirect(w, r, "/auth/login?return="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			// Session references a deleted user: destroy and redirect.
			_ = m.sessions.Destroy(r.Context())
			http.Redirect(w, r, "/auth/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns a middleware that requires the user to have the given role.
// Must be used after RequireAuth.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(*store.User)
			if !ok || user.Role != role {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalUser attaches the *store.User to the context when a valid session
// exists. Any session or lookup failure is treated as "not logged in"; public
// pages must stay usable even when session state is broken.
func (m *Middleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := m.sessions.GetString(r.Context(), SessionUserIDKey)
		if userID != "" {
			if user, err := m.users.GetByID(r.Context(), userID); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// welcomeExcluded lists path prefixes the welcome redirect never fires on: the
// destination itself, the admin area, and non-page infrastructure routes.
var welcomeExcluded = []string{"/quests", "/admin", "/auth", "/static", "/api", "/metrics", "/favicon.ico"}

// WelcomeRedirect sends a logged-in user to the quest listing the first time
// they land on a non-excluded page during a session. The flag lives in the
// session, so the redirect fires at most once per session per login lifecycle.
func (m *Middleware) WelcomeRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || welcomeExcludedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if m.sessions.GetString(r.Context(), SessionUserIDKey) == "" {
			next.ServeHTTP(w, r)
			return
		}
		if m.sessions.Exists(r.Context(), SessionWelcomeShownKey) {
			next.ServeHTTP(w, r)
			return
		}
		m.sessions.Put(r.Context(), SessionWelcomeShownKey, "1")
		metrics.WelcomeRedirectsTotal.Inc()
		http.Redirect(w, r, "/quests", http.StatusFound)
	})
}

func welcomeExcludedPath(path string) bool {
	for _, prefix := range welcomeExcluded {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// UserFromContext retrieves the authenticated user from the context.
func UserFromContext(ctx context.Context) *store.User {
	u, _ := ctx.Value(UserContextKey).(*store.User)
	return u
}
