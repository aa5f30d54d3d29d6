package services

import (
	"fmt"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

// GroupService handles the admin workflow for topic groups. End users
// never create groups; they only attach posts to existing ones.
type GroupService struct {
	groupRepo repositories.GroupRepository
	postRepo  repositories.PostRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repositories.GroupRepository, postRepo repositories.PostRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
		postRepo:  postRepo,
	}
}

// CreateGroup creates a new topic group with a unique slug
func (s *GroupService) CreateGroup(title, slug, description string) (*models.Group, error) {
	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := group.Validate(); err != nil {
		return nil, fmt.Errorf("invalid group: %v", err)
	}

	if err := s.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetBySlug retrieves a group by its slug
func (s *GroupService) GetBySlug(slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(slug)
}

// ListGroups retrieves all groups
func (s *GroupService) ListGroups() ([]*models.Group, error) {
	return s.groupRepo.List()
}

// DeleteGroup removes a group. Posts in the group are unlinked, never
// deleted: deleting a topic must not destroy its content.
func (s *GroupService) DeleteGroup(id int) error {
	if err := s.postRepo.UnlinkGroup(id); err != nil {
		return fmt.Errorf("failed to unlink posts: %v", err)
	}
	return s.groupRepo.Delete(id)
}
