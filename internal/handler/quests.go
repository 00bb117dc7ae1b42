package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/metrics"
	"github.com/questboard/questboard/internal/store"
)

// QuestView pairs a quest with its poster's username for display.
type QuestView struct {
	*store.Quest
	Poster string
}

// QuestForm holds form input values for posting a quest.
type QuestForm struct {
	Title       string
	Budget      string
	Description string
}

// QuestListPage is the template data for the quest listing.
type QuestListPage struct {
	BasePage
	Quests []QuestView
}

// QuestFormPage is the template data for the post-a-quest form.
type QuestFormPage struct {
	BasePage
	Form  QuestForm
	Error string
}

// QuestDetailPage is the template data for a single quest.
type QuestDetailPage struct {
	BasePage
	Quest    QuestView
	CanClose bool
}

// QuestsHandler provides HTTP handlers for browsing and posting quests.
type QuestsHandler struct {
	sessions *scs.SessionManager
	quests   *store.QuestStore
	users    *store.UserStore
}

// NewQuestsHandler creates a new QuestsHandler.
func NewQuestsHandler(sm *scs.SessionManager, qs *store.QuestStore, us *store.UserStore) *QuestsHandler {
	return &QuestsHandler{sessions: sm, quests: qs, users: us}
}

func (h *QuestsHandler) view(r *http.Request, q *store.Quest) QuestView {
	poster := "unknown"
	if u, err := h.users.GetByID(r.Context(), q.PosterID); err == nil {
		poster = u.Username
	}
	return QuestView{Quest: q, Poster: poster}
}

// Index renders the open quest listing. GET /quests
func (h *QuestsHandler) Index(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	quests, err := h.quests.ListOpen(r.Context())
	if err != nil {
		http.Error(w, "could not load quests", http.StatusInternalServerError)
		return
	}

	views := make([]QuestView, 0, len(quests))
	for _, q := range quests {
		views = append(views, h.view(r, q))
	}

	data := QuestListPage{BasePage: newBasePage(r, user), Quests: views}
	data.BasePage.Flash = popFlash(r.Context(), h.sessions)

	if isHTMX(r) {
		renderFragment(w, "quest_list", data)
		return
	}
	render(w, "quests/index.html", data)
}

// New renders the post-a-quest form. GET /quests/new, auth required: this is
// the guarded action.
func (h *QuestsHandler) New(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	render(w, "quests/new.html", QuestFormPage{BasePage: newBasePage(r, user)})
}

// Create processes the post-a-quest form. POST /quests
//
// All three fields are required; a blank field produces one combined error
// and the submitted values are preserved in the re-rendered form. On success
// the quest is persisted and the user lands back on the listing with a flash,
// so the next form visit starts clean and resubmission behaves like a first
// submission.
func (h *QuestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := QuestForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Budget:      strings.TrimSpace(r.FormValue("budget")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	if form.Title == "" || form.Budget == "" || form.Description == "" {
		data := QuestFormPage{
			BasePage: newBasePage(r, user),
			Form:     form,
			Error:    "Please fill in the title, budget, and description.",
		}
		if isHTMX(r) {
			renderPageFragment(w, "quests/new.html", "content", data)
			return
		}
		render(w, "quests/new.html", data)
		return
	}

	if _, err := h.quests.Create(r.Context(), form.Title, form.Budget, form.Description, user.ID); err != nil {
		data := QuestFormPage{BasePage: newBasePage(r, user), Form: form, Error: "Could not post the quest. Try again."}
		if isHTMX(r) {
			renderPageFragment(w, "quests/new.html", "content", data)
			return
		}
		render(w, "quests/new.html", data)
		return
	}

	metrics.QuestsPostedTotal.Inc()
	putFlash(r.Context(), h.sessions, "success", "Quest posted!")

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/quests")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/quests", http.StatusSeeOther)
}

// Detail renders a single quest. GET /quests/{id}
func (h *QuestsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	quest, err := h.quests.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render(w, "404.html", newBasePage(r, user))
		return
	}
	if err != nil {
		http.Error(w, "could not load quest", http.StatusInternalServerError)
		return
	}

	data := QuestDetailPage{
		BasePage: newBasePage(r, user),
		Quest:    h.view(r, quest),
		CanClose: user != nil && quest.IsOpen() && (user.ID == quest.PosterID || user.IsAdmin()),
	}
	data.BasePage.Flash = popFlash(r.Context(), h.sessions)
	render(w, "quests/detail.html", data)
}

// Close marks a quest closed. POST /quests/{id}/close. Only the poster or an
// admin may close a quest.
func (h *QuestsHandler) Close(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	quest, err := h.quests.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "could not load quest", http.StatusInternalServerError)
		return
	}
	if user.ID != quest.PosterID && !user.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if _, err := h.quests.Close(r.Context(), id); err != nil {
		http.Error(w, "close failed", http.StatusInternalServerError)
		return
	}

	putFlash(r.Context(), h.sessions, "success", "Quest closed.")
	http.Redirect(w, r, "/quests/"+id, http.StatusSeeOther)
}
