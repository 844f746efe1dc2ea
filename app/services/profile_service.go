package services

import (
	"context"
	"errors"
	"fmt"

	"socialnetwork/app/models"
	"socialnetwork/app/repositories"
)

// ProfileService handles business logic for user profiles
type ProfileService struct {
	profileRepo repositories.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repositories.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// Register inserts a profile holding only the email. A second registration
// of the same email fails with repositories.ErrDuplicateEmail.
func (s *ProfileService) Register(ctx context.Context, email string) (*models.Profile, error) {
	profile := models.NewProfile(email)
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveProfile upserts the profile by email, overwriting every other field
func (s *ProfileService) SaveProfile(ctx context.Context, profile *models.Profile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	profile.BeforeSave()

	return s.profileRepo.Upsert(ctx, profile)
}

// LoadProfile returns the stored profile, or the empty default when the
// email has never been saved.
func (s *ProfileService) LoadProfile(ctx context.Context, email string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.NewProfile(email), nil
	}
	if err != nil {
		return nil, err
	}

	profile.BeforeSave()
	return profile, nil
}
