package api

import (
	"net/http"

	"github.com/questboard/questboard/internal/store"
)

type statsAPIHandler struct {
	quests *store.QuestStore
	users  *store.UserStore
}

func newStatsAPIHandler(qs *store.QuestStore, us *store.UserStore) *statsAPIHandler {
	return &statsAPIHandler{quests: qs, users: us}
}

// statsResponse is the JSON shape for GET /api/v1/stats.
type statsResponse struct {
	Users      int `json:"users"`
	Quests     int `json:"quests"`
	OpenQuests int `json:"open_quests"`
}

// Show handles GET /api/v1/stats with public marketplace counts.
func (h *statsAPIHandler) Show(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load stats", "internal")
		return
	}
	total, err := h.quests.CountAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load stats", "internal")
		return
	}
	open, err := h.quests.CountOpen(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load stats", "internal")
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Users: len(users), Quests: total, OpenQuests: open})
}
