package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupColors is the fixed swatch palette offered for group badges.
var GroupColors = []string{"#ef4444", "#3b82f6", "#22c55e", "#eab308", "#8b5cf6", "#ec4899"}

type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Color       string    `gorm:"size:10" json:"color"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func IsGroupColor(color string) bool {
	for _, c := range GroupColors {
		if c == color {
			return true
		}
	}
	return false
}
