package services

import (
	"context"
	"fmt"

	"socialnetwork/app/models"
	"socialnetwork/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
	}
}

// ReplacePosts makes posts the complete post set of owner. Posts without an
// email are stamped with owner; a post owned by anyone else rejects the
// whole set. An empty set clears the owner's posts.
func (s *PostService) ReplacePosts(ctx context.Context, owner string, posts []*models.Post) error {
	if owner == "" {
		return ErrOwnerRequired
	}

	for i, post := range posts {
		if post == nil {
			return fmt.Errorf("%w: post %d is null", ErrInvalidPost, i)
		}
		if post.Email == "" {
			post.Email = owner
		}
		if !post.OwnedBy(owner) {
			return fmt.Errorf("%w: post %d is owned by %q, not %q", ErrMixedOwners, i, post.Email, owner)
		}
		if err := post.Validate(); err != nil {
			return fmt.Errorf("%w: post %d: %v", ErrInvalidPost, i, err)
		}

		// Identifiers are assigned by the store
		post.ID = ""
		post.BeforeSave()
	}

	return s.postRepo.ReplaceByOwner(ctx, owner, posts)
}

// ListPosts returns every post of owner in insertion order
func (s *PostService) ListPosts(ctx context.Context, owner string) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}
