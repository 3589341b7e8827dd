package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"judoacademy.app/hub/internal/dto"
	"judoacademy.app/hub/internal/model"
	"judoacademy.app/hub/internal/repository"
	"judoacademy.app/hub/pkg/apperror"
)

type GroupService interface {
	List(ctx context.Context) ([]*model.Group, error)
	Create(ctx context.Context, input dto.GroupInput) (*model.Group, error)
	Update(ctx context.Context, id uuid.UUID, input dto.GroupInput) (*model.Group, error)
	// Delete removes a group after clearing every reference to it. The steps
	// run strictly in order and the first failure aborts the rest.
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*dto.GroupStats, error)
}

type groupService struct {
	groups   repository.GroupRepository
	profiles repository.ProfileRepository
	docs     repository.DocumentRepository
}

func NewGroupService(groups repository.GroupRepository, profiles repository.ProfileRepository, docs repository.DocumentRepository) GroupService {
	return &groupService{
		groups:   groups,
		profiles: profiles,
		docs:     docs,
	}
}

func (s *groupService) List(ctx context.Context) ([]*model.Group, error) {
	return s.groups.FindAll(ctx)
}

func (s *groupService) Create(ctx context.Context, input dto.GroupInput) (*model.Group, error) {
	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	group := &model.Group{
		Name:        input.Name,
		Description: input.Description,
		Color:       color,
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) Update(ctx context.Context, id uuid.UUID, input dto.GroupInput) (*model.Group, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	group.Name = input.Name
	group.Description = input.Description
	group.Color = color

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.groups.FindByID(ctx, id); err != nil {
		return err
	}

	// Un-assign members first, then documents, then drop the row. Aborting
	// on the first failure leaves no dangling group_id behind the point of
	// failure; already-cleared references stay cleared.
	if err := s.profiles.ClearGroup(ctx, id); err != nil {
		return fmt.Errorf("failed to un-assign members from group: %w", err)
	}

	if err := s.docs.ClearGroup(ctx, id); err != nil {
		return fmt.Errorf("failed to un-assign documents from group: %w", err)
	}

	return s.groups.Delete(ctx, id)
}

func (s *groupService) Stats(ctx context.Context, id uuid.UUID) (*dto.GroupStats, error) {
	members, err := s.profiles.CountByGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	documents, err := s.docs.CountByGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.GroupStats{
		Members:   members,
		Documents: documents,
	}, nil
}

func normalizeColor(color string) (string, error) {
	if color == "" {
		return model.GroupColors[0], nil
	}
	if !model.IsGroupColor(color) {
		return "", fmt.Errorf("color %q is not in the palette: %w", color, apperror.ErrInvalidInput)
	}
	return color, nil
}
