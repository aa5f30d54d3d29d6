package services

import (
	"fmt"
	"sort"

	"scrawl/app/models"
	"scrawl/app/repositories"
)

type mockUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.BeforeCreate()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(id int) (*models.User, error) {
	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) Delete(id int) error {
	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type mockGroupRepo struct {
	groups map[int]*models.Group
	nextID int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[int]*models.Group), nextID: 1}
}

func (m *mockGroupRepo) Create(group *models.Group) error {
	for _, g := range m.groups {
		if g.Slug == group.Slug {
			return repositories.ErrDuplicate
		}
	}
	group.ID = m.nextID
	m.nextID++
	m.groups[group.ID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(id int) (*models.Group, error) {
	group, exists := m.groups[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return group, nil
}

func (m *mockGroupRepo) GetBySlug(slug string) (*models.Group, error) {
	for _, group := range m.groups {
		if group.Slug == slug {
			return group, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockGroupRepo) List() ([]*models.Group, error) {
	var groups []*models.Group
	for _, group := range m.groups {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (m *mockGroupRepo) Delete(id int) error {
	if _, exists := m.groups[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.groups, id)
	return nil
}

type mockPostRepo struct {
	posts  map[int]*models.Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int]*models.Post), nextID: 1}
}

func (m *mockPostRepo) Create(post *models.Post) error {
	post.ID = m.nextID
	m.nextID++
	post.BeforeCreate()
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepo) GetByID(id int) (*models.Post, error) {
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *mockPostRepo) listWhere(match func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range m.posts {
		if match == nil || match(post) {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *mockPostRepo) ListAll() ([]*models.Post, error) {
	return m.listWhere(nil)
}

func (m *mockPostRepo) ListByGroup(groupID int) ([]*models.Post, error) {
	return m.listWhere(func(p *models.Post) bool { return p.GroupID == groupID })
}

func (m *mockPostRepo) ListByAuthor(authorID int) ([]*models.Post, error) {
	return m.listWhere(func(p *models.Post) bool { return p.AuthorID == authorID })
}

func (m *mockPostRepo) ListByAuthors(authorIDs []int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	set := make(map[int]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = struct{}{}
	}
	return m.listWhere(func(p *models.Post) bool {
		_, ok := set[p.AuthorID]
		return ok
	})
}

func (m *mockPostRepo) CountByAuthor(authorID int) (int, error) {
	posts, err := m.ListByAuthor(authorID)
	return len(posts), err
}

func (m *mockPostRepo) Update(post *models.Post) error {
	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepo) Delete(id int) error {
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) UnlinkGroup(groupID int) error {
	for _, post := range m.posts {
		if post.GroupID == groupID {
			post.GroupID = 0
		}
	}
	return nil
}

type mockCommentRepo struct {
	comments map[int]*models.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*models.Comment), nextID: 1}
}

func (m *mockCommentRepo) Create(comment *models.Comment) error {
	comment.ID = m.nextID
	m.nextID++
	comment.BeforeCreate()
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepo) GetByID(id int) (*models.Comment, error) {
	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *mockCommentRepo) ListByPost(postID int) ([]*models.Comment, error) {
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (m *mockCommentRepo) Delete(id int) error {
	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

type mockFollowRepo struct {
	edges  map[string]*models.Follow
	nextID int
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{edges: make(map[string]*models.Follow), nextID: 1}
}

func pairKey(userID, authorID int) string {
	return fmt.Sprintf("%d:%d", userID, authorID)
}

func (m *mockFollowRepo) Create(follow *models.Follow) error {
	key := pairKey(follow.UserID, follow.AuthorID)
	if _, exists := m.edges[key]; exists {
		return repositories.ErrDuplicate
	}
	follow.ID = m.nextID
	m.nextID++
	follow.BeforeCreate()
	m.edges[key] = follow
	return nil
}

func (m *mockFollowRepo) Exists(userID, authorID int) (bool, error) {
	_, exists := m.edges[pairKey(userID, authorID)]
	return exists, nil
}

func (m *mockFollowRepo) Delete(userID, authorID int) error {
	key := pairKey(userID, authorID)
	if _, exists := m.edges[key]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.edges, key)
	return nil
}

func (m *mockFollowRepo) ListAuthorIDs(userID int) ([]int, error) {
	var authorIDs []int
	for _, edge := range m.edges {
		if edge.UserID == userID {
			authorIDs = append(authorIDs, edge.AuthorID)
		}
	}
	sort.Ints(authorIDs)
	return authorIDs, nil
}

func (m *mockFollowRepo) CountByUser(userID int) (int, error) {
	authorIDs, _ := m.ListAuthorIDs(userID)
	return len(authorIDs), nil
}

func (m *mockFollowRepo) DeleteAllForUser(userID int) error {
	for key, edge := range m.edges {
		if edge.UserID == userID || edge.AuthorID == userID {
			delete(m.edges, key)
		}
	}
	return nil
}
