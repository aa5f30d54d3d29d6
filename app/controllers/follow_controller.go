package controllers

import (
	"errors"
	"net/http"

	"scrawl/app/repositories"
	"scrawl/app/services"

	"github.com/gorilla/mux"
)

// FollowController handles following and unfollowing authors
type FollowController struct {
	followService *services.FollowService
}

// NewFollowController creates a new FollowController
func NewFollowController(followService *services.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// Follow subscribes the session user to an author's posts
func (fc *FollowController) Follow(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)
	username := mux.Vars(r)["username"]

	err := fc.followService.Follow(claims.UserID, username)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, r, "User not found", http.StatusNotFound)
		return
	case errors.Is(err, services.ErrSelfFollow):
		// Nothing to do; land back on the profile.
	case err != nil:
		sendError(w, r, "Failed to follow: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, map[string]bool{"following": !errors.Is(err, services.ErrSelfFollow)})
		return
	}
	http.Redirect(w, r, "/profile/"+username, http.StatusSeeOther)
}

// Unfollow removes the session user's subscription to an author
func (fc *FollowController) Unfollow(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)
	username := mux.Vars(r)["username"]

	err := fc.followService.Unfollow(claims.UserID, username)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to unfollow: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, map[string]bool{"following": false})
		return
	}
	http.Redirect(w, r, "/profile/"+username, http.StatusSeeOther)
}
