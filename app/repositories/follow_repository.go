package repositories

import (
	"fmt"

	"scrawl/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFollowRepository implements FollowRepository using BadgerDB.
// The pair key follow:<user>:<author> makes the uniqueness constraint a
// property of the keyspace itself.
type BadgerFollowRepository struct {
	db *badger.DB
}

// NewBadgerFollowRepository creates a new BadgerFollowRepository
func NewBadgerFollowRepository(db *badger.DB) *BadgerFollowRepository {
	return &BadgerFollowRepository{db: db}
}

// Create creates a follow edge. An existing pair returns ErrDuplicate.
func (r *BadgerFollowRepository) Create(follow *models.Follow) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := followKey(follow.UserID, follow.AuthorID)
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicate
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, FollowSeqKey)
		if err != nil {
			return err
		}
		follow.ID = id
		follow.BeforeCreate()

		data, err := marshalEntity(follow)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Exists reports whether user already follows author
func (r *BadgerFollowRepository) Exists(userID, authorID int) (bool, error) {
	var exists bool

	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(followKey(userID, authorID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})

	return exists, err
}

// Delete removes a follow edge. A missing pair returns ErrNotFound.
func (r *BadgerFollowRepository) Delete(userID, authorID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := followKey(userID, authorID)
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// ListAuthorIDs returns the IDs of every author the user follows
func (r *BadgerFollowRepository) ListAuthorIDs(userID int) ([]int, error) {
	var authorIDs []int

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", FollowKeyPrefix, userID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var authorID int
			_, err := fmt.Sscanf(string(it.Item().Key()[len(prefix):]), "%d", &authorID)
			if err != nil {
				return err
			}
			authorIDs = append(authorIDs, authorID)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return authorIDs, nil
}

// CountByUser counts the follow edges originating from the user
func (r *BadgerFollowRepository) CountByUser(userID int) (int, error) {
	authorIDs, err := r.ListAuthorIDs(userID)
	if err != nil {
		return 0, err
	}
	return len(authorIDs), nil
}

// DeleteAllForUser removes every follow edge involving the user, both as
// follower and as followed author. Used by the user deletion cascade.
func (r *BadgerFollowRepository) DeleteAllForUser(userID int) error {
	var keys [][]byte

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(FollowKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var follow models.Follow
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &follow)
			})
			if err != nil {
				return err
			}
			if follow.UserID == userID || follow.AuthorID == userID {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
