package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
	"github.com/lucasb/storyquest/internal/repository"
)

// ProfileService handles kid profiles.
type ProfileService interface {
	Create(ctx context.Context, name string) (*models.Profile, error)
	Get(ctx context.Context, id int64) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Delete(ctx context.Context, id int64) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

const maxProfileNameLen = 40

func (s *profileService) Create(ctx context.Context, name string) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxProfileNameLen {
		return nil, errors.NewValidationError("name", "too long")
	}

	profile, err := s.profileRepo.Create(ctx, name)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("profile ready: id=%d, name=%s", profile.ID, profile.Name)
	return profile, nil
}

func (s *profileService) Get(ctx context.Context, id int64) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}
	return profile, nil
}

func (s *profileService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return profiles, nil
}

func (s *profileService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("profile deleted: id=%d", id)
	return nil
}
