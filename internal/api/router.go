package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerMiddleware *auth.BearerTokenMiddleware
	QuestStore       *store.QuestStore
	UserStore        *store.UserStore
}

// NewAPIRouter assembles the /api/v1 sub-router. Read endpoints are public;
// writes require a Bearer API token.
func NewAPIRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	quests := newQuestsAPIHandler(deps.QuestStore, deps.UserStore)
	stats := newStatsAPIHandler(deps.QuestStore, deps.UserStore)

	r.Get("/quests", quests.List)
	r.Get("/quests/{id}", quests.Get)
	r.Get("/stats", stats.Show)

	r.Group(func(r chi.Router) {
		r.Use(deps.BearerMiddleware.Authenticate)
		r.Post("/quests", quests.Create)
	})

	return r
}
