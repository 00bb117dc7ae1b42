package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/metrics"
	"github.com/questboard/questboard/internal/store"
)

type questsAPIHandler struct {
	quests *store.QuestStore
	users  *store.UserStore
}

func newQuestsAPIHandler(qs *store.QuestStore, us *store.UserStore) *questsAPIHandler {
	return &questsAPIHandler{quests: qs, users: us}
}

// questResponse is the JSON shape for a single quest.
type questResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Budget      string    `json:"budget"`
	Description string    `json:"description"`
	Poster      string    `json:"poster"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// questCreateRequest is the JSON body for POST /api/v1/quests.
type questCreateRequest struct {
	Title       string `json:"title"`
	Budget      string `json:"budget"`
	Description string `json:"description"`
}

func (h *questsAPIHandler) toResponse(r *http.Request, q *store.Quest) questResponse {
	poster := ""
	if u, err := h.users.GetByID(r.Context(), q.PosterID); err == nil {
		poster = u.Username
	}
	return questResponse{
		ID:          q.ID,
		Title:       q.Title,
		Budget:      q.Budget,
		Description: q.Description,
		Poster:      poster,
		Status:      q.Status,
		CreatedAt:   q.CreatedAt,
	}
}

// List handles GET /api/v1/quests: all open quests, newest first.
func (h *questsAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	quests, err := h.quests.ListOpen(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not list quests", "internal")
		return
	}
	out := make([]questResponse, 0, len(quests))
	for _, q := range quests {
		out = append(out, h.toResponse(r, q))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/quests/{id}.
func (h *questsAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, err := h.quests.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "quest not found", "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load quest", "internal")
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(r, q))
}

// Create handles POST /api/v1/quests. Requires a Bearer token; the token
// owner becomes the poster. All three fields are required.
func (h *questsAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req questCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "bad_request")
		return
	}
	if req.Title == "" || req.Budget == "" || req.Description == "" {
		writeError(w, http.StatusBadRequest, "title, budget, and description are required", "missing_fields")
		return
	}

	q, err := h.quests.Create(r.Context(), req.Title, req.Budget, req.Description, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create quest", "internal")
		return
	}

	metrics.QuestsPostedTotal.Inc()
	writeJSON(w, http.StatusCreated, h.toResponse(r, q))
}
