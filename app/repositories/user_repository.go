package repositories

import (
	"strconv"

	"scrawl/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user. The username must be unique;
// a taken handle returns ErrDuplicate.
func (r *BadgerUserRepository) Create(user *models.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		idxKey := []byte(UsernameIdxPrefix + user.Username)
		_, err := txn.Get(idxKey)
		if err == nil {
			return ErrDuplicate
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id
		user.BeforeCreate()

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(UserKeyPrefix, user.ID), data); err != nil {
			return err
		}
		return txn.Set(idxKey, []byte(strconv.Itoa(user.ID)))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(UserKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by handle via the username index
func (r *BadgerUserRepository) GetByUsername(username string) (*models.User, error) {
	var id int

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(UsernameIdxPrefix + username))
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

// Delete deletes a user and its username index entry
func (r *BadgerUserRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(UserKeyPrefix, id)
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var user models.User
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		}); err != nil {
			return err
		}

		if err := txn.Delete([]byte(UsernameIdxPrefix + user.Username)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
