package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

const (
	// Key prefixes for different entity types
	UserKeyPrefix    = "user:"
	GroupKeyPrefix   = "group:"
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
	FollowKeyPrefix  = "follow:"

	// Secondary index prefixes for unique lookups
	UsernameIdxPrefix = "username:"
	SlugIdxPrefix     = "slug:"

	// Sequence keys for auto-incrementing IDs
	UserSeqKey    = "seq:user"
	GroupSeqKey   = "seq:group"
	PostSeqKey    = "seq:post"
	CommentSeqKey = "seq:comment"
	FollowSeqKey  = "seq:follow"
)

// entityKey builds the primary key for an entity ID under the given prefix.
func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
}

// followKey builds the unique pair key for a follow edge.
func followKey(userID, authorID int) []byte {
	return []byte(fmt.Sprintf("%s%d:%d", FollowKeyPrefix, userID, authorID))
}

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id int
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	// Store new ID
	idBytes := []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
