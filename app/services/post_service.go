package services

import (
	"fmt"
	"time"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	groupRepo   repositories.GroupRepository
}

// NewPostService creates a new PostService
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
	}
}

// CreatePost creates a post on behalf of authorID. The author is taken
// from the authenticated identity, never from the submitted form, and an
// optional group is resolved by slug.
func (s *PostService) CreatePost(authorID int, text, groupSlug, image string) (*models.Post, error) {
	post := &models.Post{
		Text:      text,
		AuthorID:  authorID,
		Image:     image,
		CreatedAt: time.Now(),
	}

	if groupSlug != "" {
		group, err := s.groupRepo.GetBySlug(groupSlug)
		if err != nil {
			return nil, fmt.Errorf("unknown group %q: %w", groupSlug, err)
		}
		post.GroupID = group.ID
	}

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post's text and group. Only the author may edit;
// anyone else gets ErrForbidden and the post is left untouched. The
// author and creation time are immutable.
func (s *PostService) UpdatePost(actorID, postID int, text, groupSlug string) (*models.Post, error) {
	existing, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != actorID {
		return nil, ErrForbidden
	}

	existing.Text = text
	existing.GroupID = 0
	if groupSlug != "" {
		group, err := s.groupRepo.GetBySlug(groupSlug)
		if err != nil {
			return nil, fmt.Errorf("unknown group %q: %w", groupSlug, err)
		}
		existing.GroupID = group.ID
	}

	if err := existing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}

	if err := s.postRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// GetPost retrieves a post with its author, group and comments attached
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %v", err)
	}
	post.Author = author

	if post.GroupID > 0 {
		group, err := s.groupRepo.GetByID(post.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load group: %v", err)
		}
		post.Group = group
	}

	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %v", err)
	}
	for _, comment := range comments {
		commentAuthor, err := s.userRepo.GetByID(comment.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("failed to load comment author: %v", err)
		}
		comment.Author = commentAuthor
	}
	post.Comments = comments

	return post, nil
}

// DeletePost deletes a post and its comments. Only the author may delete.
func (s *PostService) DeletePost(actorID, postID int) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return ErrForbidden
	}
	return s.deletePostCascade(postID)
}

// deletePostCascade removes a post together with its comments.
func (s *PostService) deletePostCascade(postID int) error {
	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return fmt.Errorf("failed to list comments: %v", err)
	}
	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment %d: %v", comment.ID, err)
		}
	}
	return s.postRepo.Delete(postID)
}

// DeleteAllByAuthor hard-deletes every post by an author along with their
// comments. Part of the user deletion cascade.
func (s *PostService) DeleteAllByAuthor(authorID int) error {
	posts, err := s.postRepo.ListByAuthor(authorID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if err := s.deletePostCascade(post.ID); err != nil {
			return err
		}
	}
	return nil
}
