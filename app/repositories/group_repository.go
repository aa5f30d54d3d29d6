package repositories

import (
	"strconv"

	"scrawl/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGroupRepository implements GroupRepository using BadgerDB
type BadgerGroupRepository struct {
	db *badger.DB
}

// NewBadgerGroupRepository creates a new BadgerGroupRepository
func NewBadgerGroupRepository(db *badger.DB) *BadgerGroupRepository {
	return &BadgerGroupRepository{db: db}
}

// Create creates a new group. Slugs are unique; a taken slug returns ErrDuplicate.
func (r *BadgerGroupRepository) Create(group *models.Group) error {
	return r.db.Update(func(txn *badger.Txn) error {
		idxKey := []byte(SlugIdxPrefix + group.Slug)
		_, err := txn.Get(idxKey)
		if err == nil {
			return ErrDuplicate
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, GroupSeqKey)
		if err != nil {
			return err
		}
		group.ID = id

		data, err := marshalEntity(group)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(GroupKeyPrefix, group.ID), data); err != nil {
			return err
		}
		return txn.Set(idxKey, []byte(strconv.Itoa(group.ID)))
	})
}

// GetByID retrieves a group by ID
func (r *BadgerGroupRepository) GetByID(id int) (*models.Group, error) {
	var group models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(GroupKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &group)
		})
	})

	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group by its unique slug via the slug index
func (r *BadgerGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var id int

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SlugIdxPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = strconv.Atoi(string(val))
			return err
		})
	})

	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// List retrieves all groups
func (r *BadgerGroupRepository) List() ([]*models.Group, error) {
	var groups []*models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(GroupKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var group models.Group
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &group)
			})
			if err != nil {
				return err
			}
			groups = append(groups, &group)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete deletes a group and its slug index entry. Posts referencing the
// group are not touched here; callers unlink them via PostRepository.
func (r *BadgerGroupRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(GroupKeyPrefix, id)
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var group models.Group
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &group)
		}); err != nil {
			return err
		}

		if err := txn.Delete([]byte(SlugIdxPrefix + group.Slug)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
