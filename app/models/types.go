package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// User is a registered author identified by a unique handle.
type User struct {
	ID           int       `json:"id" validate:"gte=0"`
	Username     string    `json:"username" validate:"required,min=2,max=50,alphanum"`
	PasswordHash string    `json:"-" validate:"required"`
	CreatedAt    time.Time `json:"created_at" validate:"-"`
}

// Group is a named topic posts can optionally belong to.
type Group struct {
	ID          int    `json:"id" validate:"gte=0"`
	Title       string `json:"title" validate:"required,max=200"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description" validate:"-"`
}

// Post is a user-authored content item with text, an optional image
// and an optional group.
type Post struct {
	ID        int       `json:"id" validate:"gte=0"`
	Text      string    `json:"text" validate:"required"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	GroupID   int       `json:"group_id,omitempty" validate:"gte=0"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Populated for rendering, never persisted with the post value.
	Author   *User      `json:"-" validate:"-"`
	Group    *Group     `json:"-" validate:"-"`
	Comments []*Comment `json:"-" validate:"-"`
}

// Comment is user-authored text attached to exactly one post.
type Comment struct {
	ID        int       `json:"id" validate:"gte=0"`
	PostID    int       `json:"post_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	Text      string    `json:"text" validate:"required,max=1000"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"-" validate:"-"`
}

// Follow is a directed subscription edge from one user to another.
type Follow struct {
	ID        int       `json:"id" validate:"gte=0"`
	UserID    int       `json:"user_id" validate:"required,gt=0"`
	AuthorID  int       `json:"author_id" validate:"required,gt=0"`
	CreatedAt time.Time `json:"created_at"`
}
