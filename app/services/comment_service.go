package services

import (
	"fmt"
	"time"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment by authorID to an existing post.
// The post must exist; the author is the authenticated identity.
func (s *CommentService) AddComment(authorID, postID int, text string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %v", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (s *CommentService) DeleteComment(actorID, commentID int) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actorID {
		return nil, ErrForbidden
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListPostComments retrieves all comments for an existing post
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}
