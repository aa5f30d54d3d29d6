package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"scrawl/app/repositories"
	"scrawl/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	renderer       *Renderer
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, renderer *Renderer) *CommentController {
	return &CommentController{commentService: commentService, renderer: renderer}
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)

	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var text string
	if wantsJSON(r) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = body.Text
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = r.FormValue("text")
	}

	if text == "" {
		// An empty comment just lands back on the detail page; the post
		// and its existing comments are untouched.
		if wantsJSON(r) {
			sendError(w, r, "Text is required", http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", postID), http.StatusSeeOther)
		return
	}

	comment, err := cc.commentService.AddComment(claims.UserID, postID, text)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to create comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, comment)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/posts/%d", postID), http.StatusSeeOther)
}

// Delete handles removing a comment. Only the comment's author may
// delete it; anyone else is bounced back to the post.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.DeleteComment(claims.UserID, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, r, "Comment not found", http.StatusNotFound)
		return
	case errors.Is(err, services.ErrForbidden):
		sendError(w, r, "Only the author can delete this comment", http.StatusForbidden)
		return
	case err != nil:
		sendError(w, r, "Failed to delete comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/posts/%d", comment.PostID), http.StatusSeeOther)
}
