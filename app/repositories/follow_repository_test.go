package repositories

import (
	"testing"

	"scrawl/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerFollowRepository(db)

	follow := func(userID, authorID int) error {
		return repo.Create(&models.Follow{UserID: userID, AuthorID: authorID})
	}

	t.Run("create and exists", func(t *testing.T) {
		require.NoError(t, follow(1, 2))

		exists, err := repo.Exists(1, 2)
		require.NoError(t, err)
		assert.True(t, exists)

		// The edge is directed
		exists, err = repo.Exists(2, 1)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("pair is unique", func(t *testing.T) {
		assert.ErrorIs(t, follow(1, 2), ErrDuplicate)

		count, err := repo.CountByUser(1)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("list followed authors", func(t *testing.T) {
		require.NoError(t, follow(1, 3))
		require.NoError(t, follow(2, 3))

		authors, err := repo.ListAuthorIDs(1)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{2, 3}, authors)

		authors, err = repo.ListAuthorIDs(99)
		require.NoError(t, err)
		assert.Empty(t, authors)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(1, 2))

		exists, err := repo.Exists(1, 2)
		require.NoError(t, err)
		assert.False(t, exists)

		assert.ErrorIs(t, repo.Delete(1, 2), ErrNotFound)
	})

	t.Run("delete all for user covers both directions", func(t *testing.T) {
		// Current edges: 1->3, 2->3. Add 3->1 so user 3 appears on both sides.
		require.NoError(t, follow(3, 1))

		require.NoError(t, repo.DeleteAllForUser(3))

		for _, pair := range [][2]int{{1, 3}, {2, 3}, {3, 1}} {
			exists, err := repo.Exists(pair[0], pair[1])
			require.NoError(t, err)
			assert.False(t, exists, "edge %v should be gone", pair)
		}
	})
}
