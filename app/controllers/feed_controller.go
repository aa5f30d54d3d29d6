package controllers

import (
	"errors"
	"net/http"

	"scrawl/app/repositories"
	"scrawl/app/services"

	"github.com/gorilla/mux"
)

// FeedController handles the four read-only feed views
type FeedController struct {
	feedService *services.FeedService
	renderer    *Renderer
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService *services.FeedService, renderer *Renderer) *FeedController {
	return &FeedController{feedService: feedService, renderer: renderer}
}

// Index handles the global listing of all posts
func (fc *FeedController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := fc.feedService.Index(pageParam(r))
	if err != nil {
		sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, pageJSON(page))
		return
	}
	if err := fc.renderer.Render(w, "index", FeedView{User: currentUser(r), Page: page}); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Group handles the listing of posts in one group
func (fc *FeedController) Group(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	feed, err := fc.feedService.Group(slug, pageParam(r))
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Group not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to fetch group posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		data := pageJSON(feed.Page)
		data["group"] = feed.Group
		sendJSON(w, data)
		return
	}
	view := GroupView{User: currentUser(r), Group: feed.Group, Page: feed.Page}
	if err := fc.renderer.Render(w, "group", view); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Profile handles an author's profile listing
func (fc *FeedController) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	viewerID := 0
	if claims := currentUser(r); claims != nil {
		viewerID = claims.UserID
	}

	feed, err := fc.feedService.Profile(username, viewerID, pageParam(r))
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to fetch profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		data := pageJSON(feed.Page)
		data["author"] = feed.Author
		data["post_count"] = feed.PostCount
		data["following"] = feed.Following
		sendJSON(w, data)
		return
	}
	view := ProfileView{
		User:      currentUser(r),
		Author:    feed.Author,
		Page:      feed.Page,
		PostCount: feed.PostCount,
		Following: feed.Following,
	}
	if err := fc.renderer.Render(w, "profile", view); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// FollowIndex handles the personalized feed of followed authors
func (fc *FeedController) FollowIndex(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)

	page, err := fc.feedService.Follow(claims.UserID, pageParam(r))
	if err != nil {
		sendError(w, r, "Failed to fetch follow feed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, pageJSON(page))
		return
	}
	if err := fc.renderer.Render(w, "follow", FeedView{User: claims, Page: page}); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// pageJSON shapes a page for the JSON surface
func pageJSON(page *services.Page) map[string]interface{} {
	return map[string]interface{}{
		"posts":       page.Posts,
		"page":        page.Number,
		"total_count": page.TotalCount,
		"total_pages": page.TotalPages,
		"has_next":    page.HasNext,
		"has_prev":    page.HasPrev,
	}
}
