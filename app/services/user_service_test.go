package services

import (
	"testing"

	"scrawl/app/models"
	"scrawl/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	service  *UserService
	users    *mockUserRepo
	posts    *mockPostRepo
	comments *mockCommentRepo
	follows  *mockFollowRepo
}

func newUserFixture(t *testing.T) *userFixture {
	f := &userFixture{
		users:    newMockUserRepo(),
		posts:    newMockPostRepo(),
		comments: newMockCommentRepo(),
		follows:  newMockFollowRepo(),
	}
	groups := newMockGroupRepo()
	postService := NewPostService(f.posts, f.comments, f.users, groups)
	f.service = NewUserService(f.users, f.follows, postService)
	return f
}

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newUserFixture(t)

	user, err := f.service.Register("ivan", "sekret1")
	require.NoError(t, err)
	assert.Greater(t, user.ID, 0)

	got, err := f.service.Authenticate("ivan", "sekret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.service.Authenticate("ivan", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = f.service.Authenticate("nobody", "sekret1")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.service.Register("ivan", "short")
	assert.Error(t, err)

	_, err = f.service.Register("", "long enough")
	assert.Error(t, err)

	_, err = f.service.Register("ivan", "sekret1")
	require.NoError(t, err)
	_, err = f.service.Register("ivan", "sekret1")
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestDeleteUserCascades(t *testing.T) {
	f := newUserFixture(t)

	ivan, err := f.service.Register("ivan", "sekret1")
	require.NoError(t, err)
	maria, err := f.service.Register("maria", "sekret1")
	require.NoError(t, err)

	post := &models.Post{Text: "ivan's post", AuthorID: ivan.ID}
	post.BeforeCreate()
	require.NoError(t, f.posts.Create(post))
	require.NoError(t, f.comments.Create(&models.Comment{PostID: post.ID, AuthorID: maria.ID, Text: "hi"}))
	require.NoError(t, f.follows.Create(&models.Follow{UserID: maria.ID, AuthorID: ivan.ID}))
	require.NoError(t, f.follows.Create(&models.Follow{UserID: ivan.ID, AuthorID: maria.ID}))

	require.NoError(t, f.service.DeleteUser(ivan.ID))

	_, err = f.users.GetByID(ivan.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	posts, err := f.posts.ListByAuthor(ivan.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)

	comments, err := f.comments.ListByPost(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	for _, pair := range [][2]int{{maria.ID, ivan.ID}, {ivan.ID, maria.ID}} {
		exists, err := f.follows.Exists(pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestGroupServiceDeleteUnlinks(t *testing.T) {
	groups := newMockGroupRepo()
	posts := newMockPostRepo()
	service := NewGroupService(groups, posts)

	group, err := service.CreateGroup("Travel", "travel", "places")
	require.NoError(t, err)

	post := &models.Post{Text: "grouped", AuthorID: 1, GroupID: group.ID}
	post.BeforeCreate()
	require.NoError(t, posts.Create(post))

	require.NoError(t, service.DeleteGroup(group.ID))

	_, err = service.GetBySlug("travel")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// The post survived, just unlinked
	got, err := posts.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.GroupID)
}
