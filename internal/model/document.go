package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FileTypeDocument = "document"
	FileTypeImage    = "image"
)

// Document is the metadata row for an uploaded file. FilePath is the opaque
// storage key of the backing blob; a nil GroupID makes the document visible to
// every group. UploaderID is severed (and UploaderEmail replaced) when the
// uploading member is anonymized.
type Document struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	FilePath      string     `gorm:"type:text;not null" json:"file_path"`
	FileType      string     `gorm:"size:20;not null" json:"file_type"`
	GroupID       *uuid.UUID `gorm:"type:uuid" json:"group_id"`
	Group         *Group     `json:"group,omitempty"`
	UploaderID    *uuid.UUID `gorm:"type:uuid" json:"uploader_id,omitempty"`
	UploaderEmail string     `gorm:"size:100" json:"uploader_email,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func IsValidFileType(t string) bool {
	return t == FileTypeDocument || t == FileTypeImage
}
