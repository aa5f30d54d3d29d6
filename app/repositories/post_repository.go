package repositories

import (
	"scrawl/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(PostKeyPrefix, post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(PostKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// listWhere scans the post prefix and collects posts matching the filter.
func (r *BadgerPostRepository) listWhere(match func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if match == nil || match(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListAll retrieves every post
func (r *BadgerPostRepository) ListAll() ([]*models.Post, error) {
	return r.listWhere(nil)
}

// ListByGroup retrieves posts attached to a group
func (r *BadgerPostRepository) ListByGroup(groupID int) ([]*models.Post, error) {
	return r.listWhere(func(p *models.Post) bool {
		return p.GroupID == groupID
	})
}

// ListByAuthor retrieves posts written by an author
func (r *BadgerPostRepository) ListByAuthor(authorID int) ([]*models.Post, error) {
	return r.listWhere(func(p *models.Post) bool {
		return p.AuthorID == authorID
	})
}

// ListByAuthors retrieves posts written by any of the given authors
func (r *BadgerPostRepository) ListByAuthors(authorIDs []int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	set := make(map[int]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		set[id] = struct{}{}
	}
	return r.listWhere(func(p *models.Post) bool {
		_, ok := set[p.AuthorID]
		return ok
	})
}

// CountByAuthor counts the posts written by an author
func (r *BadgerPostRepository) CountByAuthor(authorID int) (int, error) {
	posts, err := r.ListByAuthor(authorID)
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

// Update updates an existing post
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a post by ID
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)

		// Verify post exists
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

// UnlinkGroup clears the group reference on every post in the group.
// Used when a group is deleted: posts survive, their group goes away.
func (r *BadgerPostRepository) UnlinkGroup(groupID int) error {
	posts, err := r.ListByGroup(groupID)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		for _, post := range posts {
			post.GroupID = 0
			data, err := marshalEntity(post)
			if err != nil {
				return err
			}
			if err := txn.Set(entityKey(PostKeyPrefix, post.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}
