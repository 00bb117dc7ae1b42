package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/questboard/questboard/internal/api"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
	"github.com/questboard/questboard/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	AuthMiddleware *auth.Middleware
	UserStore      *store.UserStore
	QuestStore     *store.QuestStore
	TokenStore     auth.TokenStore
}

// NewRouter assembles the full chi router. Every page's handlers are declared
// here once: which handler runs for which page is a routing decision, never
// inferred from markup.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(deps.SessionManager.LoadAndSave)

	// Once-per-session redirect of logged-in users to the quest listing.
	// Runs after LoadAndSave; skips the listing, admin, and non-page routes.
	r.Use(deps.AuthMiddleware.WelcomeRedirect)

	// Static assets (embedded). Use fs.Sub so the file server sees
	// css/app.css and js/app.js directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	// Auth routes (no auth required)
	authPages := NewAuthHandler(deps.SessionManager, deps.UserStore)
	r.Get("/auth/login", authPages.LoginForm)
	r.Post("/auth/login", authPages.Login)
	r.Get("/auth/signup", authPages.SignupForm)
	r.Post("/auth/signup", authPages.Signup)
	r.Post("/auth/logout", authPages.Logout)

	// Theme toggle, no auth required.
	themeHandler := NewThemeHandler()
	r.Post("/theme", themeHandler.Toggle)

	// Public pages. OptionalUser so nav state and quest detail render for
	// logged-in and anonymous visitors alike; a broken session degrades to
	// anonymous instead of erroring.
	landing := NewLandingHandler(deps.QuestStore)
	quests := NewQuestsHandler(deps.SessionManager, deps.QuestStore, deps.UserStore)
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.OptionalUser)
		r.Get("/", landing.Index)
		r.Get("/quests", quests.Index)
		r.Get("/quests/{id}", quests.Detail)
	})

	// Authenticated routes. /quests/new is the guarded action: RequireAuth
	// intercepts anonymous visitors and sends them to login with a `return`
	// parameter pointing back here.
	account := NewAccountHandler(deps.QuestStore, deps.UserStore)
	settings := NewSettingsHandler(deps.TokenStore)
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)

		// NOTE: /quests/new MUST be registered before chi can treat "new" as
		// a {id}: static segments win over params within the same method.
		r.Get("/quests/new", quests.New)
		r.Post("/quests", quests.Create)
		r.Post("/quests/{id}/close", quests.Close)

		r.Get("/account", account.Show)

		r.Get("/settings", settings.Show)
		r.Post("/settings/tokens", settings.CreateToken)
		r.Post("/settings/tokens/{id}/revoke", settings.RevokeToken)
	})

	// Admin routes (require admin role)
	admin := NewAdminHandler(deps.SessionManager, deps.UserStore, deps.QuestStore)
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)
		r.Use(deps.AuthMiddleware.RequireRole("admin"))
		r.Get("/admin", admin.Dashboard)
		r.Get("/admin/users", admin.Users)
		r.Post("/admin/users/{id}/role", admin.UpdateRole)
		r.Get("/admin/quests", admin.Quests)
		r.Post("/admin/quests/{id}/delete", admin.DeleteQuest)
	})

	// Prometheus metrics, no auth required.
	r.Handle("/metrics", promhttp.Handler())

	// JSON API sub-router at /api/v1.
	bearerMiddleware := auth.NewBearerTokenMiddleware(deps.TokenStore, deps.UserStore)
	apiRouter := api.NewAPIRouter(api.Deps{
		BearerMiddleware: bearerMiddleware,
		QuestStore:       deps.QuestStore,
		UserStore:        deps.UserStore,
	})
	r.Mount("/api/v1", apiRouter)

	return r
}
