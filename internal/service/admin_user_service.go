package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/internal/repository"
	"judoacademy.app/hub/pkg/apperror"
)

type AdminUserService interface {
	ListUsers(ctx context.Context) ([]*model.Profile, error)
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*model.Profile, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*model.Profile, error)
	// RemoveUser anonymizes a member in place. The account row survives; the
	// member's documents are severed first, then the profile's personal data
	// is cleared and their role reset.
	RemoveUser(ctx context.Context, id uuid.UUID) error
}

type adminUserService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	docs     repository.DocumentRepository
}

func NewAdminUserService(users repository.UserRepository, profiles repository.ProfileRepository, docs repository.DocumentRepository) AdminUserService {
	return &adminUserService{
		users:    users,
		profiles: profiles,
		docs:     docs,
	}
}

func (s *adminUserService) ListUsers(ctx context.Context) ([]*model.Profile, error) {
	return s.profiles.FindAll(ctx)
}

func (s *adminUserService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*model.Profile, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, errors.New("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if input.Belt != "" && !model.IsValidBelt(input.Belt) {
		return nil, fmt.Errorf("unknown belt %q: %w", input.Belt, apperror.ErrInvalidInput)
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}

	groupID, err := parseGroupRef(input.GroupID)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}

	profile := &model.Profile{
		FullName:  input.FullName,
		Surnames:  input.Surnames,
		Phone:     input.Phone,
		Age:       input.Age,
		Address:   input.Address,
		TutorName: input.TutorName,
		Belt:      input.Belt,
		GroupID:   groupID,
		Role:      role,
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	return s.profiles.FindByID(ctx, user.ID)
}

func (s *adminUserService) UpdateUser(ctx context.Context, id uuid.UUID, input dto.UpdateUserInput) (*model.Profile, error) {
	if _, err := s.profiles.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.Surnames != nil {
		updates["surnames"] = *input.Surnames
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Age != nil {
		updates["age"] = *input.Age
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.TutorName != nil {
		updates["tutor_name"] = *input.TutorName
	}
	if input.Belt != nil {
		if *input.Belt != "" && !model.IsValidBelt(*input.Belt) {
			return nil, fmt.Errorf("unknown belt %q: %w", *input.Belt, apperror.ErrInvalidInput)
		}
		updates["belt"] = *input.Belt
	}
	if input.Role != nil {
		if !model.IsValidRole(*input.Role) {
			return nil, fmt.Errorf("unknown role %q: %w", *input.Role, apperror.ErrInvalidInput)
		}
		updates["role"] = *input.Role
	}
	if input.GroupID != nil {
		groupID, err := parseGroupRef(input.GroupID)
		if err != nil {
			return nil, err
		}
		updates["group_id"] = groupID
	}

	if len(updates) > 0 {
		if err := s.profiles.UpdateFields(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.profiles.FindByID(ctx, id)
}

func (s *adminUserService) RemoveUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.profiles.FindByID(ctx, id); err != nil {
		return err
	}

	// Sever the member's uploads before touching the profile, so a failure
	// here leaves the profile intact and the operation retryable.
	if err := s.docs.SeverUploader(ctx, id); err != nil {
		return fmt.Errorf("failed to detach user's documents: %w", err)
	}

	anonymized := map[string]interface{}{
		"full_name":  model.AnonymizedFullName,
		"surnames":   "",
		"phone":      "",
		"age":        nil,
		"address":    "",
		"tutor_name": "",
		"belt":       "",
		"group_id":   nil,
		"role":       model.RoleUser,
	}

	if err := s.profiles.UpdateFields(ctx, id, anonymized); err != nil {
		return fmt.Errorf("failed to anonymize profile: %w", err)
	}

	return nil
}
