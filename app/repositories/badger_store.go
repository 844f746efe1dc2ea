package repositories

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"socialnetwork/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on an embedded BadgerDB. Documents are kept
// as JSON values.
type BadgerStore struct {
	db       *badger.DB
	profiles *BadgerProfileRepository
	posts    *BadgerPostRepository
}

// OpenBadgerStore opens the database at path. An empty path opens an
// in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already open BadgerDB
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{
		db:       db,
		profiles: NewBadgerProfileRepository(db),
		posts:    NewBadgerPostRepository(db),
	}
}

func (s *BadgerStore) Profiles() ProfileRepository { return s.profiles }

func (s *BadgerStore) Posts() PostRepository { return s.posts }

// Close returns the unused part of the post id lease and closes the database
func (s *BadgerStore) Close(_ context.Context) error {
	if err := s.posts.release(); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to release post sequence: %w", err)
	}
	return s.db.Close()
}

// Backup writes a full backup of the store to w
func (s *BadgerStore) Backup(w io.Writer) error {
	_, err := s.db.Backup(w, 0)
	return err
}

// Restore loads a backup written by Backup
func (s *BadgerStore) Restore(r io.Reader) error {
	return s.db.Load(r, 4)
}

// BadgerProfileRepository implements ProfileRepository using BadgerDB
type BadgerProfileRepository struct {
	db *badger.DB
}

// NewBadgerProfileRepository creates a new BadgerProfileRepository
func NewBadgerProfileRepository(db *badger.DB) *BadgerProfileRepository {
	return &BadgerProfileRepository{db: db}
}

// Create stores a new profile unless the email is already taken
func (r *BadgerProfileRepository) Create(_ context.Context, profile *models.Profile) error {
	return update(r.db, func(txn *badger.Txn) error {
		key := profileKey(profile.Email)

		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("%w: duplicate key { email: %q }", ErrDuplicateEmail, profile.Email)
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		data, err := marshalEntity(profile)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Upsert writes the profile whether or not it exists
func (r *BadgerProfileRepository) Upsert(_ context.Context, profile *models.Profile) error {
	data, err := marshalEntity(profile)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.Email), data)
	})
}

// GetByEmail retrieves a profile by exact email match
func (r *BadgerProfileRepository) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	var profile models.Profile

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(email))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &profile)
		})
	})

	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// BadgerPostRepository implements PostRepository using BadgerDB. Post ids
// come from a leased badger.Sequence, so replace transactions of different
// owners never touch a shared key.
type BadgerPostRepository struct {
	db    *badger.DB
	mutex sync.Mutex
	seq   *badger.Sequence
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// ReplaceByOwner swaps the owner's post set inside one transaction, so a
// failed insert leaves the previous set untouched.
func (r *BadgerPostRepository) ReplaceByOwner(_ context.Context, email string, posts []*models.Post) error {
	return update(r.db, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := postPrefix(email)

		var stale [][]byte
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("failed to delete post: %w", err)
			}
		}

		for _, post := range posts {
			id, err := r.nextID()
			if err != nil {
				return err
			}
			post.ID = strconv.FormatUint(id, 10)

			data, err := marshalEntity(post)
			if err != nil {
				return err
			}
			if err := txn.Set(postKey(email, id), data); err != nil {
				return fmt.Errorf("failed to insert post: %w", err)
			}
		}
		return nil
	})
}

// nextID returns the next post id, leasing the sequence on first use
func (r *BadgerPostRepository) nextID() (uint64, error) {
	r.mutex.Lock()
	if r.seq == nil {
		seq, err := r.db.GetSequence([]byte(PostSeqKey), postSeqBandwidth)
		if err != nil {
			r.mutex.Unlock()
			return 0, fmt.Errorf("failed to lease post sequence: %w", err)
		}
		r.seq = seq
	}
	seq := r.seq
	r.mutex.Unlock()

	id, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to get post id: %w", err)
	}
	// Sequences start at 0
	return id + 1, nil
}

func (r *BadgerPostRepository) release() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.seq == nil {
		return nil
	}
	err := r.seq.Release()
	r.seq = nil
	return err
}

// ListByOwner retrieves every post for the owner in insertion order
func (r *BadgerPostRepository) ListByOwner(_ context.Context, email string) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := postPrefix(email)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			post.BeforeSave()
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}
