package handler

import (
	"net/http"

	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
)

// LandingPage is the template data for the public landing page.
type LandingPage struct {
	BasePage
	OpenQuests int
}

// LandingHandler serves the public landing page.
type LandingHandler struct {
	quests *store.QuestStore
}

// NewLandingHandler creates a new LandingHandler.
func NewLandingHandler(qs *store.QuestStore) *LandingHandler {
	return &LandingHandler{quests: qs}
}

// Index serves GET /. Logged-in users arriving here for the first time in a
// session never reach this handler; the welcome redirect fires upstream.
func (h *LandingHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	open, _ := h.quests.CountOpen(r.Context())
	render(w, "landing.html", LandingPage{BasePage: newBasePage(r, user), OpenQuests: open})
}
