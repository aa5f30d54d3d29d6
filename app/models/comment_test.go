package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				AuthorID:  1,
				Text:      "Nice post",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing post",
			comment: &Comment{
				ID:        1,
				AuthorID:  1,
				Text:      "Floating comment",
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty text",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				AuthorID:  1,
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "text too long",
			comment: &Comment{
				ID:        1,
				PostID:    1,
				AuthorID:  1,
				Text:      strings.Repeat("a", 1001),
				CreatedAt: time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{Text: "hi", AuthorID: 1}

	assert.Error(t, comment.SetPost(nil))

	post := &Post{ID: 7}
	assert.NoError(t, comment.SetPost(post))
	assert.Equal(t, 7, comment.PostID)
}
