package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/model"
)

type ProfileRepository interface {
	// FindByID fetches the profile joined with its group in one call.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindAll(ctx context.Context) ([]*model.Profile, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	// ClearGroup sets group_id to null on every profile assigned to the group.
	ClearGroup(ctx context.Context, groupID uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Where("id = ?", id).
		First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) FindAll(ctx context.Context) ([]*model.Profile, error) {
	var profiles []*model.Profile
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *profileRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *profileRepository) ClearGroup(ctx context.Context, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("group_id = ?", groupID).
		Update("group_id", nil).Error
}
