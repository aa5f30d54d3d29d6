package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"

	// Recognized upload formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"scrawl/app/models"
	"scrawl/app/repositories"
	"scrawl/app/services"

	"github.com/gorilla/mux"
)

const maxImageBytes = 10 << 20

// PostController handles HTTP requests for posts
type PostController struct {
	postService  *services.PostService
	groupService *services.GroupService
	media        *services.MediaStore
	renderer     *Renderer
}

// NewPostController creates a new PostController
func NewPostController(
	postService *services.PostService,
	groupService *services.GroupService,
	media *services.MediaStore,
	renderer *Renderer,
) *PostController {
	return &PostController{
		postService:  postService,
		groupService: groupService,
		media:        media,
		renderer:     renderer,
	}
}

// postForm is the submitted create/edit form after parsing.
type postForm struct {
	Text  string `json:"text"`
	Group string `json:"group"`
	image string
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	pc.renderForm(w, r, &models.Post{}, nil, false)
}

// Create handles creating a new post. The author is always the session
// user; the form has no author field to forge.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)

	form, formErrs, err := pc.parseForm(r)
	if err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(formErrs) > 0 {
		pc.renderFormErrors(w, r, &models.Post{Text: form.Text}, formErrs, false)
		return
	}

	post, err := pc.postService.CreatePost(claims.UserID, form.Text, form.Group, form.image)
	if err != nil {
		pc.renderFormErrors(w, r, &models.Post{Text: form.Text}, map[string]string{"text": err.Error()}, false)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, post)
		return
	}
	http.Redirect(w, r, "/profile/"+claims.Username, http.StatusSeeOther)
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{
			"post":     post,
			"comments": post.Comments,
		})
		return
	}
	if err := pc.renderer.Render(w, "show", PostView{User: currentUser(r), Post: post}); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// EditForm displays the edit form. Non-authors are bounced to the
// read-only detail view instead of seeing the form.
func (pc *PostController) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if post.AuthorID != currentUser(r).UserID {
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
		return
	}
	pc.renderForm(w, r, post, nil, true)
}

// Edit handles updating an existing post. Editing someone else's post is
// a silent redirect to the detail view, never a mutation; ownership is
// settled before the form is looked at, so a non-author never sees
// field errors either.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	claims := currentUser(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	existing, err := pc.postService.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, r, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if existing.AuthorID != claims.UserID {
		if wantsJSON(r) {
			sendError(w, r, "Only the author can edit this post", http.StatusForbidden)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
		return
	}

	form, formErrs, err := pc.parseForm(r)
	if err != nil {
		sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(formErrs) > 0 {
		pc.renderFormErrors(w, r, &models.Post{ID: id, Text: form.Text}, formErrs, true)
		return
	}

	post, err := pc.postService.UpdatePost(claims.UserID, id, form.Text, form.Group)
	switch {
	case errors.Is(err, services.ErrForbidden):
		if wantsJSON(r) {
			sendError(w, r, "Only the author can edit this post", http.StatusForbidden)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", id), http.StatusSeeOther)
		return
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	case err != nil:
		pc.renderFormErrors(w, r, &models.Post{ID: id, Text: form.Text}, map[string]string{"text": err.Error()}, true)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, post)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/posts/%d", post.ID), http.StatusSeeOther)
}

// parseForm extracts the post form from either surface. Field-level
// problems come back in the map; only transport failures are errors.
// The image is stored only after the other fields validate, so a
// rejected submission never leaves a file behind.
func (pc *PostController) parseForm(r *http.Request) (*postForm, map[string]string, error) {
	form := &postForm{}
	formErrs := make(map[string]string)

	if wantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			return nil, nil, err
		}
	} else {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			if err != http.ErrNotMultipart {
				return nil, nil, err
			}
			if err := r.ParseForm(); err != nil {
				return nil, nil, err
			}
		}
		form.Text = r.FormValue("text")
		form.Group = r.FormValue("group")
	}

	if form.Text == "" {
		formErrs["text"] = "Text is required"
		return form, formErrs, nil
	}

	if !wantsJSON(r) {
		stored, imgErr := pc.saveImage(r)
		if imgErr != nil {
			formErrs["image"] = imgErr.Error()
		}
		form.image = stored
	}
	return form, formErrs, nil
}

// saveImage validates and stores an uploaded image, returning the stored
// filename. No file attached is not an error; a broken upload is.
func (pc *PostController) saveImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile || r.MultipartForm == nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %v", err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("upload is not a valid image")
	}

	return pc.media.Save(header.Filename, bytes.NewReader(data))
}

func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, post *models.Post, formErrs map[string]string, isEdit bool) {
	groups, err := pc.groupService.ListGroups()
	if err != nil {
		sendError(w, r, "Failed to fetch groups: "+err.Error(), http.StatusInternalServerError)
		return
	}

	view := PostFormView{
		User:   currentUser(r),
		Post:   post,
		Groups: groups,
		Errors: formErrs,
		IsEdit: isEdit,
	}
	if err := pc.renderer.Render(w, "form", view); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// renderFormErrors re-renders the submission form with field errors;
// nothing has been persisted at this point.
func (pc *PostController) renderFormErrors(w http.ResponseWriter, r *http.Request, post *models.Post, formErrs map[string]string, isEdit bool) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": formErrs})
		return
	}
	pc.renderForm(w, r, post, formErrs, isEdit)
}
