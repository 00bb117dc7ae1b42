package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
)

// SettingsPage is the template data for the settings page (API token management).
type SettingsPage struct {
	BasePage
	Tokens   []*auth.TokenRecord
	NewToken string // plaintext shown once after creation; empty otherwise
	Error    string
}

// SettingsHandler provides web UI handlers for the settings page.
type SettingsHandler struct {
	tokens auth.TokenStore
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ts auth.TokenStore) *SettingsHandler {
	return &SettingsHandler{tokens: ts}
}

// Show renders the settings page with the user's API tokens. GET /settings
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	records, err := h.tokens.ListByUser(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "could not load tokens", http.StatusInternalServerError)
		return
	}

	render(w, "settings.html", SettingsPage{BasePage: newBasePage(r, user), Tokens: records})
}

// CreateToken processes the token creation form and shows the plaintext once.
// POST /settings/tokens
func (h *SettingsHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		h.renderWithError(w, r, user, "Token name is required.")
		return
	}

	var expiresAt *time.Time
	if exp := r.FormValue("expires_in"); exp != "" {
		d, err := time.ParseDuration(exp)
		if err != nil {
			h.renderWithError(w, r, user, "Invalid expiry duration.")
			return
		}
		t := time.Now().Add(d)
		expiresAt = &t
	}

	plaintext, hash, err := auth.GenerateToken()
	if err != nil {
		h.renderWithError(w, r, user, "Failed to generate token.")
		return
	}

	if _, err := h.tokens.Create(r.Context(), user.ID, name, hash, expiresAt); err != nil {
		h.renderWithError(w, r, user, "Failed to create token.")
		return
	}

	records, _ := h.tokens.ListByUser(r.Context(), user.ID)

	data := SettingsPage{
		BasePage: newBasePage(r, user),
		Tokens:   records,
		NewToken: plaintext,
	}
	data.BasePage.Flash = &Flash{Type: "success", Message: "Token created. Copy it now — it will not be shown again."}
	render(w, "settings.html", data)
}

// RevokeToken soft-deletes a token owned by the current user.
// POST /settings/tokens/{id}/revoke
func (h *SettingsHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	tokenID := chi.URLParam(r, "id")

	err := h.tokens.Revoke(r.Context(), tokenID, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "revoke failed", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *SettingsHandler) renderWithError(w http.ResponseWriter, r *http.Request, user *store.User, msg string) {
	records, _ := h.tokens.ListByUser(r.Context(), user.ID)
	render(w, "settings.html", SettingsPage{BasePage: newBasePage(r, user), Tokens: records, Error: msg})
}
