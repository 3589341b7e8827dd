package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/model"
)

type DocumentRepository interface {
	// FindAll lists every document joined with its group, newest first.
	FindAll(ctx context.Context) ([]*model.Document, error)
	// FindVisible lists documents reachable by a member of the given group:
	// group-less documents plus those of the member's own group.
	FindVisible(ctx context.Context, groupID *uuid.UUID) ([]*model.Document, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error)
	Create(ctx context.Context, doc *model.Document) error
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
	// ClearGroup sets group_id to null on every document assigned to the group.
	ClearGroup(ctx context.Context, groupID uuid.UUID) error
	// SeverUploader detaches all documents uploaded by the user, replacing the
	// denormalized uploader email with the anonymization placeholder.
	SeverUploader(ctx context.Context, uploaderID uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) FindAll(ctx context.Context) ([]*model.Document, error) {
	var docs []*model.Document
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) FindVisible(ctx context.Context, groupID *uuid.UUID) ([]*model.Document, error) {
	query := r.db.WithContext(ctx).
		Preload("Group").
		Order("created_at DESC")

	if groupID == nil {
		query = query.Where("group_id IS NULL")
	} else {
		query = query.Where("group_id IS NULL OR group_id = ?", *groupID)
	}

	var docs []*model.Document
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).
		Preload("Group").
		Where("id = ?", id).
		First(&doc).Error; err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", id).Error
}

func (r *documentRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *documentRepository) ClearGroup(ctx context.Context, groupID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("group_id = ?", groupID).
		Update("group_id", nil).Error
}

func (r *documentRepository) SeverUploader(ctx context.Context, uploaderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("uploader_id = ?", uploaderID).
		Updates(map[string]interface{}{
			"uploader_id":    nil,
			"uploader_email": model.AnonymizedUploaderEmail,
		}).Error
}
