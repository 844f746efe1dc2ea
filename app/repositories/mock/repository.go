package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"socialnetwork/app/models"
	"socialnetwork/app/repositories"
)

type ProfileRepository struct {
	profiles map[string]models.Profile
	mutex    sync.RWMutex
	// Err, when set, is returned by every call.
	Err error
}

type PostRepository struct {
	posts  map[string][]models.Post
	nextID int
	mutex  sync.RWMutex
	// Err, when set, is returned by every call.
	Err error
}

// Store bundles the in-memory repositories behind repositories.Store
type Store struct {
	ProfileRepo *ProfileRepository
	PostRepo    *PostRepository
}

func NewStore() *Store {
	return &Store{
		ProfileRepo: NewProfileRepository(),
		PostRepo:    NewPostRepository(),
	}
}

func (s *Store) Profiles() repositories.ProfileRepository { return s.ProfileRepo }

func (s *Store) Posts() repositories.PostRepository { return s.PostRepo }

func (s *Store) Close(context.Context) error { return nil }

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[string]models.Profile),
	}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[string][]models.Post),
		nextID: 1,
	}
}

// ProfileRepository implementation
func (m *ProfileRepository) Create(_ context.Context, profile *models.Profile) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.profiles[profile.Email]; exists {
		return fmt.Errorf("%w: duplicate key { email: %q }", repositories.ErrDuplicateEmail, profile.Email)
	}
	m.profiles[profile.Email] = copyProfile(*profile)
	return nil
}

func (m *ProfileRepository) Upsert(_ context.Context, profile *models.Profile) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.profiles[profile.Email] = copyProfile(*profile)
	return nil
}

func (m *ProfileRepository) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	profile, exists := m.profiles[email]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	profile = copyProfile(profile)
	return &profile, nil
}

// PostRepository implementation
func (m *PostRepository) ReplaceByOwner(_ context.Context, email string, posts []*models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	stored := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		post.ID = strconv.Itoa(m.nextID)
		m.nextID++
		stored = append(stored, copyPost(*post))
	}
	m.posts[email] = stored
	return nil
}

func (m *PostRepository) ListByOwner(_ context.Context, email string) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := []*models.Post{}
	for _, post := range m.posts[email] {
		post = copyPost(post)
		post.BeforeSave()
		posts = append(posts, &post)
	}
	return posts, nil
}

// Count returns the number of stored posts for email
func (m *PostRepository) Count(email string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.posts[email])
}

func copyProfile(p models.Profile) models.Profile {
	if p.Gallery != nil {
		p.Gallery = append([]string{}, p.Gallery...)
	}
	return p
}

func copyPost(p models.Post) models.Post {
	if p.Comments != nil {
		p.Comments = append([]models.Comment{}, p.Comments...)
	}
	return p
}
