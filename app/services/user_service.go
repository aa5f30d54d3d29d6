package services

import (
	"errors"
	"fmt"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

// ErrBadCredentials signals a failed login attempt. The message does not
// say whether the username or the password was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

// UserService handles registration, login and account removal
type UserService struct {
	userRepo    repositories.UserRepository
	followRepo  repositories.FollowRepository
	postService *PostService
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, postService *PostService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		postService: postService,
	}
}

// Register creates a new user with a bcrypt-hashed password.
// A taken username returns repositories.ErrDuplicate.
func (s *UserService) Register(username, password string) (*models.User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	user := &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("invalid user: %v", err)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair and returns the user on success
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// GetByUsername retrieves a user by handle
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

// DeleteUser removes a user together with their posts (and those posts'
// comments) and every follow edge involving them. Admin operation; the
// cascade mirrors the relationship rules of the data model.
func (s *UserService) DeleteUser(id int) error {
	if err := s.postService.DeleteAllByAuthor(id); err != nil {
		return fmt.Errorf("failed to delete posts: %v", err)
	}
	if err := s.followRepo.DeleteAllForUser(id); err != nil {
		return fmt.Errorf("failed to delete follow edges: %v", err)
	}
	return s.userRepo.Delete(id)
}
