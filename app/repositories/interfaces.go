package repositories

import (
	"context"

	"socialnetwork/app/models"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// Create inserts a new profile and fails with ErrDuplicateEmail when the
	// email is already taken.
	Create(ctx context.Context, profile *models.Profile) error
	// Upsert creates the profile if absent, otherwise overwrites every
	// field in place.
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// ReplaceByOwner deletes every post owned by email, then inserts posts
	// in order. Assigned ids are written back into posts.
	ReplaceByOwner(ctx context.Context, email string, posts []*models.Post) error
	// ListByOwner returns the owner's posts in insertion order.
	ListByOwner(ctx context.Context, email string) ([]*models.Post, error)
}

// Store is an open document store holding both collections.
type Store interface {
	Profiles() ProfileRepository
	Posts() PostRepository
	Close(ctx context.Context) error
}
