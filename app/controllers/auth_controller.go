package controllers

import (
	"errors"
	"net/http"
	"strings"

	"scrawl/app/auth"
	"scrawl/app/repositories"
	"scrawl/app/services"
)

// AuthController handles signup, login and logout
type AuthController struct {
	userService *services.UserService
	sessions    *auth.Sessions
	renderer    *Renderer
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService, sessions *auth.Sessions, renderer *Renderer) *AuthController {
	return &AuthController{
		userService: userService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// SignupForm displays the registration form
func (ac *AuthController) SignupForm(w http.ResponseWriter, r *http.Request) {
	ac.renderAuth(w, r, "signup", "", nextParam(r))
}

// Signup handles registration and logs the new user in
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.userService.Register(r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, repositories.ErrDuplicate) {
		ac.renderAuth(w, r, "signup", "That username is taken", nextParam(r))
		return
	}
	if err != nil {
		ac.renderAuth(w, r, "signup", err.Error(), nextParam(r))
		return
	}

	ac.startSession(w, r, user.ID, user.Username)
}

// LoginForm displays the login form
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.renderAuth(w, r, "login", "", nextParam(r))
}

// Login authenticates a username/password pair
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.userService.Authenticate(r.FormValue("username"), r.FormValue("password"))
	if errors.Is(err, services.ErrBadCredentials) {
		ac.renderAuth(w, r, "login", err.Error(), nextParam(r))
		return
	}
	if err != nil {
		sendError(w, r, "Login failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	ac.startSession(w, r, user.ID, user.Username)
}

// Logout clears the session cookie
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession issues the cookie and sends the user on to the next URL
func (ac *AuthController) startSession(w http.ResponseWriter, r *http.Request, userID int, username string) {
	token, err := ac.sessions.Issue(userID, username)
	if err != nil {
		sendError(w, r, "Failed to create session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	ac.sessions.SetCookie(w, token)

	if wantsJSON(r) {
		sendJSON(w, map[string]string{"token": token, "username": username})
		return
	}
	http.Redirect(w, r, nextParam(r), http.StatusSeeOther)
}

func (ac *AuthController) renderAuth(w http.ResponseWriter, r *http.Request, name, errMsg, next string) {
	if wantsJSON(r) && errMsg != "" {
		sendError(w, r, errMsg, http.StatusBadRequest)
		return
	}
	view := AuthView{User: currentUser(r), Error: errMsg, Next: next}
	if err := ac.renderer.Render(w, name, view); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// nextParam returns the post-login destination, restricted to local
// paths so the login flow cannot be used as an open redirect.
func nextParam(r *http.Request) string {
	next := r.FormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
