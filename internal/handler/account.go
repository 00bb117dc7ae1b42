package handler

import (
	"net/http"

	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/store"
)

// AccountPage is the template data for the account page.
type AccountPage struct {
	BasePage
	Quests []QuestView
}

// AccountHandler serves the authenticated account page: profile details and
// the user's own quests, open and closed.
type AccountHandler struct {
	quests *store.QuestStore
	users  *store.UserStore
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(qs *store.QuestStore, us *store.UserStore) *AccountHandler {
	return &AccountHandler{quests: qs, users: us}
}

// Show serves GET /account.
func (h *AccountHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	quests, err := h.quests.ListByPoster(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "could not load quests", http.StatusInternalServerError)
		return
	}

	views := make([]QuestView, 0, len(quests))
	for _, q := range quests {
		views = append(views, QuestView{Quest: q, Poster: user.Username})
	}

	render(w, "account.html", AccountPage{BasePage: newBasePage(r, user), Quests: views})
}
