package repositories

import "scrawl/app/models"

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Delete(id int) error
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id int) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	List() ([]*models.Group, error)
	Delete(id int) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	ListAll() ([]*models.Post, error)
	ListByGroup(groupID int) ([]*models.Post, error)
	ListByAuthor(authorID int) ([]*models.Post, error)
	ListByAuthors(authorIDs []int) ([]*models.Post, error)
	CountByAuthor(authorID int) (int, error)
	Update(post *models.Post) error
	Delete(id int) error
	UnlinkGroup(groupID int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	Delete(id int) error
}

// FollowRepository defines the interface for follow-edge data access
type FollowRepository interface {
	Create(follow *models.Follow) error
	Exists(userID, authorID int) (bool, error)
	Delete(userID, authorID int) error
	ListAuthorIDs(userID int) ([]int, error)
	CountByUser(userID int) (int, error)
	DeleteAllForUser(userID int) error
}
