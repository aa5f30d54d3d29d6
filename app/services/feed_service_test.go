package services

import (
	"testing"
	"time"

	"scrawl/app/models"
	"scrawl/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedFixture struct {
	feed     *FeedService
	posts    *mockPostRepo
	users    *mockUserRepo
	groups   *mockGroupRepo
	follows  *mockFollowRepo
	ivan     *models.User
	maria    *models.User
	travel   *models.Group
	baseTime time.Time
}

func newFeedFixture(t *testing.T, perPage int) *feedFixture {
	f := &feedFixture{
		posts:    newMockPostRepo(),
		users:    newMockUserRepo(),
		groups:   newMockGroupRepo(),
		follows:  newMockFollowRepo(),
		baseTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.feed = NewFeedService(f.posts, f.users, f.groups, f.follows, perPage)

	f.ivan = &models.User{Username: "ivan", PasswordHash: "x"}
	require.NoError(t, f.users.Create(f.ivan))
	f.maria = &models.User{Username: "maria", PasswordHash: "x"}
	require.NoError(t, f.users.Create(f.maria))

	f.travel = &models.Group{Title: "Travel", Slug: "travel"}
	require.NoError(t, f.groups.Create(f.travel))
	return f
}

func (f *feedFixture) addPost(t *testing.T, author *models.User, groupID, minutesAgo int) *models.Post {
	post := &models.Post{
		Text:      "post",
		AuthorID:  author.ID,
		GroupID:   groupID,
		CreatedAt: f.baseTime.Add(-time.Duration(minutesAgo) * time.Minute),
	}
	require.NoError(t, f.posts.Create(post))
	return post
}

func TestFeedIndexOrdering(t *testing.T) {
	f := newFeedFixture(t, 10)

	oldest := f.addPost(t, f.ivan, 0, 30)
	newest := f.addPost(t, f.maria, 0, 1)
	middle := f.addPost(t, f.ivan, 0, 10)

	page, err := f.feed.Index(1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 3)
	assert.Equal(t, newest.ID, page.Posts[0].ID)
	assert.Equal(t, middle.ID, page.Posts[1].ID)
	assert.Equal(t, oldest.ID, page.Posts[2].ID)

	// Relations are attached for rendering
	assert.Equal(t, "maria", page.Posts[0].Author.Username)
}

func TestFeedIndexTieBreak(t *testing.T) {
	f := newFeedFixture(t, 10)

	first := f.addPost(t, f.ivan, 0, 5)
	second := f.addPost(t, f.ivan, 0, 5)

	page, err := f.feed.Index(1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	// Equal timestamps: the later insert wins the tie
	assert.Equal(t, second.ID, page.Posts[0].ID)
	assert.Equal(t, first.ID, page.Posts[1].ID)
}

func TestFeedGroupIsolation(t *testing.T) {
	f := newFeedFixture(t, 10)

	food := &models.Group{Title: "Food", Slug: "food"}
	require.NoError(t, f.groups.Create(food))

	inTravel := f.addPost(t, f.ivan, f.travel.ID, 2)
	f.addPost(t, f.ivan, food.ID, 1)
	f.addPost(t, f.ivan, 0, 3)

	feed, err := f.feed.Group("travel", 1)
	require.NoError(t, err)
	require.Len(t, feed.Page.Posts, 1)
	assert.Equal(t, inTravel.ID, feed.Page.Posts[0].ID)
	assert.Equal(t, "Travel", feed.Group.Title)

	// The other group sees only its own post
	other, err := f.feed.Group("food", 1)
	require.NoError(t, err)
	require.Len(t, other.Page.Posts, 1)
	assert.NotEqual(t, inTravel.ID, other.Page.Posts[0].ID)
}

func TestFeedGroupNotFound(t *testing.T) {
	f := newFeedFixture(t, 10)

	_, err := f.feed.Group("nope", 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFeedProfile(t *testing.T) {
	f := newFeedFixture(t, 10)

	f.addPost(t, f.ivan, 0, 1)
	f.addPost(t, f.ivan, 0, 2)
	f.addPost(t, f.maria, 0, 3)

	profile, err := f.feed.Profile("ivan", f.maria.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "ivan", profile.Author.Username)
	assert.Equal(t, 2, profile.PostCount)
	assert.Len(t, profile.Page.Posts, 2)
	assert.False(t, profile.Following)

	require.NoError(t, f.follows.Create(&models.Follow{UserID: f.maria.ID, AuthorID: f.ivan.ID}))

	profile, err = f.feed.Profile("ivan", f.maria.ID, 1)
	require.NoError(t, err)
	assert.True(t, profile.Following)

	// Anonymous viewers never "follow"
	profile, err = f.feed.Profile("ivan", 0, 1)
	require.NoError(t, err)
	assert.False(t, profile.Following)

	_, err = f.feed.Profile("nobody", 0, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFeedFollow(t *testing.T) {
	f := newFeedFixture(t, 10)

	ivanPost := f.addPost(t, f.ivan, 0, 1)
	f.addPost(t, f.maria, 0, 2)

	// No follows: empty feed, not an error
	page, err := f.feed.Follow(f.maria.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)

	require.NoError(t, f.follows.Create(&models.Follow{UserID: f.maria.ID, AuthorID: f.ivan.ID}))

	page, err = f.feed.Follow(f.maria.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, ivanPost.ID, page.Posts[0].ID)

	// The author's own feed does not include their posts
	page, err = f.feed.Follow(f.ivan.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestFeedPagination(t *testing.T) {
	f := newFeedFixture(t, 10)

	for i := 0; i < 13; i++ {
		f.addPost(t, f.ivan, f.travel.ID, i)
	}

	for _, view := range []func(int) (*Page, error){
		f.feed.Index,
		func(page int) (*Page, error) {
			feed, err := f.feed.Group("travel", page)
			if err != nil {
				return nil, err
			}
			return feed.Page, nil
		},
		func(page int) (*Page, error) {
			profile, err := f.feed.Profile("ivan", 0, page)
			if err != nil {
				return nil, err
			}
			return profile.Page, nil
		},
	} {
		first, err := view(1)
		require.NoError(t, err)
		assert.Len(t, first.Posts, 10)

		second, err := view(2)
		require.NoError(t, err)
		assert.Len(t, second.Posts, 3)
	}
}
