package handler

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/metrics"
	"github.com/questboard/questboard/internal/store"
)

// AdminHandler serves admin views.
type AdminHandler struct {
	sessions *scs.SessionManager
	users    *store.UserStore
	quests   *store.QuestStore
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sm *scs.SessionManager, us *store.UserStore, qs *store.QuestStore) *AdminHandler {
	return &AdminHandler{sessions: sm, users: us, quests: qs}
}

// AdminDashboardPage is the template data for the admin overview.
type AdminDashboardPage struct {
	BasePage
	UserCount  int
	QuestCount int
	OpenCount  int
}

// AdminUsersPage is the template data for the user management list.
type AdminUsersPage struct {
	BasePage
	Users []*store.User
}

// AdminQuestsPage is the template data for quest moderation.
type AdminQuestsPage struct {
	BasePage
	Quests []QuestView
}

// Dashboard renders the admin overview with summary stats. GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	allUsers, _ := h.users.ListAll(r.Context())
	total, _ := h.quests.CountAll(r.Context())
	open, _ := h.quests.CountOpen(r.Context())

	metrics.UsersTotal.Set(float64(len(allUsers)))
	metrics.QuestsTotal.Set(float64(total))

	data := AdminDashboardPage{
		BasePage:   newBasePage(r, user),
		UserCount:  len(allUsers),
		QuestCount: total,
		OpenCount:  open,
	}
	data.BasePage.Flash = popFlash(r.Context(), h.sessions)
	render(w, "admin/dashboard.html", data)
}

// Users renders the user management list. GET /admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	allUsers, _ := h.users.ListAll(r.Context())
	data := AdminUsersPage{
		BasePage: newBasePage(r, user),
		Users:    allUsers,
	}
	render(w, "admin/users.html", data)
}

// UpdateRole handles POST /admin/users/{id}/role. Toggles a user's role and
// returns the updated row fragment for HTMX, or redirects for plain forms.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	role := r.FormValue("role")
	if role != "admin" && role != "user" {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}
	target, err := h.users.UpdateRole(r.Context(), id, role)
	if err != nil {
		http.Error(w, "update failed", http.StatusInternalServerError)
		return
	}
	if isHTMX(r) {
		renderPageFragment(w, "admin/users.html", "user_row", target)
		return
	}
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// Quests renders the quest moderation list (all quests, any status).
// GET /admin/quests
func (h *AdminHandler) Quests(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	// Moderation sees everything: open quests plus each user's closed ones.
	allUsers, err := h.users.ListAll(r.Context())
	if err != nil {
		http.Error(w, "could not load quests", http.StatusInternalServerError)
		return
	}
	var views []QuestView
	for _, u := range allUsers {
		quests, err := h.quests.ListByPoster(r.Context(), u.ID)
		if err != nil {
			http.Error(w, "could not load quests", http.StatusInternalServerError)
			return
		}
		for _, q := range quests {
			views = append(views, QuestView{Quest: q, Poster: u.Username})
		}
	}

	data := AdminQuestsPage{BasePage: newBasePage(r, user), Quests: views}
	data.BasePage.Flash = popFlash(r.Context(), h.sessions)
	render(w, "admin/quests.html", data)
}

// DeleteQuest removes a quest outright. POST /admin/quests/{id}/delete
func (h *AdminHandler) DeleteQuest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.quests.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}

	putFlash(r.Context(), h.sessions, "success", "Quest deleted.")
	http.Redirect(w, r, "/admin/quests", http.StatusSeeOther)
}
