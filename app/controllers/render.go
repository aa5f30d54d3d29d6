package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"scrawl/app/auth"
	"scrawl/app/middleware"
	"scrawl/app/models"
	"scrawl/app/services"
)

// Typed view models handed to the templates. Every template gets exactly
// one of these, never an ad-hoc bag of attributes.

// FeedView renders the index and follow feed listings.
type FeedView struct {
	User *auth.Claims
	Page *services.Page
}

// GroupView renders a group listing.
type GroupView struct {
	User  *auth.Claims
	Group *models.Group
	Page  *services.Page
}

// ProfileView renders an author profile.
type ProfileView struct {
	User      *auth.Claims
	Author    *models.User
	Page      *services.Page
	PostCount int
	Following bool
}

// PostView renders a post detail page with its comments.
type PostView struct {
	User *auth.Claims
	Post *models.Post
}

// PostFormView renders the post create/edit form.
type PostFormView struct {
	User   *auth.Claims
	Post   *models.Post
	Groups []*models.Group
	Errors map[string]string
	IsEdit bool
}

// AuthView renders the login and signup forms.
type AuthView struct {
	User  *auth.Claims
	Error string
	Next  string
}

// Renderer executes the parsed template sets.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer loads and parses all template sets relative to basePath
func NewRenderer(basePath string) *Renderer {
	views := filepath.Join(basePath, "app", "views")
	parse := func(files ...string) *template.Template {
		paths := make([]string, 0, len(files)+1)
		paths = append(paths, filepath.Join(views, "layout.html"))
		for _, f := range files {
			paths = append(paths, filepath.Join(views, f))
		}
		return template.Must(template.ParseFiles(paths...))
	}

	return &Renderer{templates: map[string]*template.Template{
		"index":   parse("posts/index.html"),
		"group":   parse("posts/group.html"),
		"profile": parse("posts/profile.html"),
		"show":    parse("posts/show.html"),
		"form":    parse("posts/form.html"),
		"follow":  parse("posts/follow.html"),
		"login":   parse("auth/login.html"),
		"signup":  parse("auth/signup.html"),
	}}
}

// Render executes the named template set against the view model
func (rn *Renderer) Render(w http.ResponseWriter, name string, data interface{}) error {
	return rn.templates[name].ExecuteTemplate(w, "layout", data)
}

// wantsJSON reports whether the request asked for the JSON surface
func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// pageParam reads the 1-based ?page= parameter; anything unparseable is
// page 1 (the paginator clamps out-of-range numbers itself).
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// currentUser returns the session claims for the request, if any
func currentUser(r *http.Request) *auth.Claims {
	claims, _ := middleware.UserFrom(r.Context())
	return claims
}

func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}
