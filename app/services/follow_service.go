package services

import (
	"errors"
	"fmt"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

// FollowService handles the follow graph between users
type FollowService struct {
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
}

// NewFollowService creates a new FollowService
func NewFollowService(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes userID to the author with the given username.
// Following yourself is rejected with ErrSelfFollow; following an author
// you already follow is a silent no-op rather than an integrity fault.
func (s *FollowService) Follow(userID int, username string) error {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if author.ID == userID {
		return ErrSelfFollow
	}

	follow := &models.Follow{UserID: userID, AuthorID: author.ID}
	err = s.followRepo.Create(follow)
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create follow edge: %v", err)
	}
	return nil
}

// Unfollow removes userID's subscription to the author with the given
// username. Unfollowing someone you don't follow is a no-op.
func (s *FollowService) Unfollow(userID int, username string) error {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return err
	}

	err = s.followRepo.Delete(userID, author.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}

// IsFollowing reports whether userID follows the author with the given username
func (s *FollowService) IsFollowing(userID int, username string) (bool, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(userID, author.ID)
}

// FollowCount returns the number of authors userID follows
func (s *FollowService) FollowCount(userID int) (int, error) {
	return s.followRepo.CountByUser(userID)
}
