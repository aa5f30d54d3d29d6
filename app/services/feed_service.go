package services

import (
	"fmt"
	"sort"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

// FeedService builds the ordered, paginated post listings for the four
// feed views: global index, group listing, author profile and follow feed.
type FeedService struct {
	postRepo   repositories.PostRepository
	userRepo   repositories.UserRepository
	groupRepo  repositories.GroupRepository
	followRepo repositories.FollowRepository
	perPage    int
}

// ProfileFeed is the author profile view: the author's page of posts,
// their total post count and whether the viewer follows them.
type ProfileFeed struct {
	Author    *models.User
	Page      *Page
	PostCount int
	Following bool
}

// GroupFeed is the group listing view.
type GroupFeed struct {
	Group *models.Group
	Page  *Page
}

// NewFeedService creates a new FeedService
func NewFeedService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	groupRepo repositories.GroupRepository,
	followRepo repositories.FollowRepository,
	perPage int,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		followRepo: followRepo,
		perPage:    perPage,
	}
}

// Index returns the requested page of all posts, newest first.
func (s *FeedService) Index(page int) (*Page, error) {
	posts, err := s.postRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %v", err)
	}
	return s.page(posts, page)
}

// Group returns the requested page of posts in the group with the given
// slug. An unknown slug yields repositories.ErrNotFound.
func (s *FeedService) Group(slug string, page int) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByGroup(group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group posts: %v", err)
	}

	p, err := s.page(posts, page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: p}, nil
}

// Profile returns the requested page of posts by the author with the
// given username, plus the author's post count and whether viewerID
// follows them. viewerID 0 means an anonymous viewer. An unknown
// username yields repositories.ErrNotFound.
func (s *FeedService) Profile(username string, viewerID, page int) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByAuthor(author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %v", err)
	}

	following := false
	if viewerID > 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(viewerID, author.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow edge: %v", err)
		}
	}

	p, err := s.page(posts, page)
	if err != nil {
		return nil, err
	}
	return &ProfileFeed{
		Author:    author,
		Page:      p,
		PostCount: len(posts),
		Following: following,
	}, nil
}

// Follow returns the requested page of posts by every author the user
// follows. No follows means an empty page, not an error.
func (s *FeedService) Follow(userID, page int) (*Page, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followed authors: %v", err)
	}

	posts, err := s.postRepo.ListByAuthors(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow feed posts: %v", err)
	}
	return s.page(posts, page)
}

// page orders posts newest first, slices the requested page and fills in
// the rendering relations for the posts on it.
func (s *FeedService) page(posts []*models.Post, number int) (*Page, error) {
	sortPostsNewestFirst(posts)
	p := Paginate(posts, number, s.perPage)
	if err := s.attachRelations(p.Posts); err != nil {
		return nil, err
	}
	return p, nil
}

// attachRelations fills in Author and Group for the posts on a page.
func (s *FeedService) attachRelations(posts []*models.Post) error {
	users := make(map[int]*models.User)
	groups := make(map[int]*models.Group)

	for _, post := range posts {
		author, ok := users[post.AuthorID]
		if !ok {
			var err error
			author, err = s.userRepo.GetByID(post.AuthorID)
			if err != nil {
				return fmt.Errorf("failed to load author %d: %v", post.AuthorID, err)
			}
			users[post.AuthorID] = author
		}
		post.Author = author

		if post.GroupID > 0 {
			group, ok := groups[post.GroupID]
			if !ok {
				var err error
				group, err = s.groupRepo.GetByID(post.GroupID)
				if err != nil {
					return fmt.Errorf("failed to load group %d: %v", post.GroupID, err)
				}
				groups[post.GroupID] = group
			}
			post.Group = group
		}
	}
	return nil
}

// sortPostsNewestFirst orders by creation time descending; equal
// timestamps fall back to ID descending so the ordering is total and
// stable across requests.
func sortPostsNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
