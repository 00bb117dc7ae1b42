package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/questboard/questboard/internal/auth"
	"github.com/questboard/questboard/internal/metrics"
	"github.com/questboard/questboard/internal/store"
)

// LoginPage is the template data for the login form.
type LoginPage struct {
	BasePage
	Return        string // guarded destination to forward to after login
	Username      string
	UsernameError string
	PasswordError string
	Error         string
}

// SignupForm holds form input values for the signup page.
type SignupForm struct {
	Username string
	Email    string
}

// SignupPage is the template data for the signup form.
type SignupPage struct {
	BasePage
	Form  SignupForm
	Error string
}

// AuthHandler provides HTTP handlers for login, signup, and logout.
type AuthHandler struct {
	sessions *scs.SessionManager
	users    *store.UserStore
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sm *scs.SessionManager, us *store.UserStore) *AuthHandler {
	return &AuthHandler{sessions: sm, users: us}
}

// LoginForm serves GET /auth/login. Already-authenticated users are sent to
// the quest listing. The `return` query parameter is carried into the form so
// a post-login redirect can honor it.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.GetString(r.Context(), auth.SessionUserIDKey) != "" {
		http.Redirect(w, r, "/quests", http.StatusFound)
		return
	}
	data := LoginPage{
		BasePage: newBasePage(r, nil),
		Return:   r.URL.Query().Get("return"),
	}
	data.BasePage.Flash = popFlash(r.Context(), h.sessions)
	render(w, "login.html", data)
}

// Login processes POST /auth/login.
//
// Empty fields fail with field-level errors before any credential check.
// Credentials are verified against the stored bcrypt hash; unknown users and
// wrong passwords produce the same error. Admin-role users always land on
// /admin and the `return` parameter is ignored for them.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	returnTo := r.FormValue("return")

	data := LoginPage{
		BasePage: newBasePage(r, nil),
		Return:   returnTo,
		Username: username,
	}
	if username == "" {
		data.UsernameError = "Username is required."
	}
	if password == "" {
		data.PasswordError = "Password is required."
	}
	if data.UsernameError != "" || data.PasswordError != "" {
		h.renderLogin(w, r, data)
		return
	}

	user, err := h.users.Authenticate(r.Context(), username, password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		data.Error = "Invalid username or password."
		h.renderLogin(w, r, data)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	h.sessions.Put(r.Context(), auth.SessionUserIDKey, user.ID)
	h.sessions.Put(r.Context(), auth.SessionRoleKey, user.Role)
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	redirect := "/quests"
	switch {
	case user.IsAdmin():
		// Elevated logins always land on the admin dashboard.
		redirect = "/admin"
	case safeReturnPath(returnTo):
		redirect = returnTo
	}

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", redirect)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, data LoginPage) {
	if isHTMX(r) {
		renderPageFragment(w, "login.html", "content", data)
		return
	}
	render(w, "login.html", data)
}

// SignupForm serves GET /auth/signup.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.GetString(r.Context(), auth.SessionUserIDKey) != "" {
		http.Redirect(w, r, "/quests", http.StatusFound)
		return
	}
	render(w, "signup.html", SignupPage{BasePage: newBasePage(r, nil)})
}

// Signup processes POST /auth/signup. Validation order, first failure wins:
// required fields, then password length, then confirmation match, then
// username format and uniqueness. On success the account is created and the
// user is sent to the login page with a flash.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := SignupForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
	}
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	var msg string
	switch {
	case form.Username == "" || form.Email == "" || password == "":
		msg = "All fields are required."
	case len(password) < store.MinPasswordLength:
		msg = "Password must be at least 6 characters long."
	case password != confirm:
		msg = "Passwords do not match."
	}
	if msg != "" {
		h.renderSignup(w, r, SignupPage{BasePage: newBasePage(r, nil), Form: form, Error: msg})
		return
	}

	_, err := h.users.Create(r.Context(), form.Username, form.Email, password, "user")
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		h.renderSignup(w, r, SignupPage{BasePage: newBasePage(r, nil), Form: form, Error: "That username is already taken."})
		return
	case errors.Is(err, store.ErrUsernameInvalid) || errors.Is(err, store.ErrUsernameReserved):
		h.renderSignup(w, r, SignupPage{BasePage: newBasePage(r, nil), Form: form, Error: "Usernames are lowercase letters, digits, and hyphens."})
		return
	case err != nil:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	metrics.SignupsTotal.Inc()
	putFlash(r.Context(), h.sessions, "success", "Account created. Log in to get started.")

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/auth/login")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

func (h *AuthHandler) renderSignup(w http.ResponseWriter, r *http.Request, data SignupPage) {
	if isHTMX(r) {
		renderPageFragment(w, "signup.html", "content", data)
		return
	}
	render(w, "signup.html", data)
}

// Logout destroys the session (and with it the welcome-redirect flag) and
// sends the user home. Destroying an absent session is a no-op.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		http.Error(w, "logout error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// safeReturnPath accepts only same-site relative paths for post-login
// forwarding, rejecting absolute URLs and protocol-relative ("//") targets.
func safeReturnPath(p string) bool {
	return p != "" && strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}
