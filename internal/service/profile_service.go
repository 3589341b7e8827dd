package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/internal/repository"
)

type ProfileService interface {
	// GetProfile fetches the caller's profile joined with its group. Two
	// calls with no mutation in between return the same value.
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*model.Profile, error)
}

type profileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

func NewProfileService(users repository.UserRepository, profiles repository.ProfileRepository) ProfileService {
	return &profileService{
		users:    users,
		profiles: profiles,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.profiles.FindByID(ctx, userID)
}

// UpdateOwnProfile applies the member-editable subset. Role, belt and group
// assignments stay admin-managed and are not reachable from here.
func (s *profileService) UpdateOwnProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (*model.Profile, error) {
	if _, err := s.profiles.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.TutorName != nil {
		updates["tutor_name"] = *input.TutorName
	}

	if len(updates) > 0 {
		if err := s.profiles.UpdateFields(ctx, userID, updates); err != nil {
			return nil, err
		}
	}

	if input.Password != nil && *input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
			return nil, err
		}
	}

	return s.profiles.FindByID(ctx, userID)
}
