package repositories

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/sha3"
)

const (
	// Key prefixes for different entity types
	ProfileKeyPrefix = "profile:"
	PostKeyPrefix    = "post:"

	// Sequence key for post ids, which also fixes insertion order
	PostSeqKey = "seq:post"
	// Ids leased from the sequence per write to disk
	postSeqBandwidth = 1000

	maxConflictRetries = 5
)

// update runs fn in a read-write transaction, retrying when a concurrent
// commit touched the same keys.
func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// ownerKey maps an email to a fixed-width key segment. Emails may contain
// the ':' separator, so they are never embedded in keys verbatim.
func ownerKey(email string) string {
	sum := sha3.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}

func profileKey(email string) []byte {
	return []byte(ProfileKeyPrefix + ownerKey(email))
}

// postPrefix is the key prefix shared by all posts of one owner.
func postPrefix(email string) []byte {
	return []byte(PostKeyPrefix + ownerKey(email) + ":")
}

// postKey appends the big-endian sequence so that prefix iteration yields
// posts in insertion order.
func postKey(email string, seq uint64) []byte {
	key := postPrefix(email)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	return append(key, buf[:]...)
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
