package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Placeholder values written during member anonymization. The account row is
// kept, only the personal data goes.
const (
	AnonymizedFullName      = "Usuario Eliminado"
	AnonymizedUploaderEmail = "Usuario eliminado"
)

// User is the authentication account. It is never hard-deleted from handler
// code; removing a member anonymizes the Profile in place instead.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"foreignKey:ID;references:ID" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile shares its primary key with the owning User.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"size:100;not null" json:"email"`
	FullName  string     `gorm:"size:100" json:"full_name"`
	Surnames  string     `gorm:"size:100" json:"surnames"`
	Phone     string     `gorm:"size:30" json:"phone"`
	Age       *int       `json:"age,omitempty"`
	Address   string     `gorm:"type:text" json:"address"`
	TutorName string     `gorm:"size:100" json:"tutor_name"`
	Belt      string     `gorm:"size:30" json:"belt"`
	GroupID   *uuid.UUID `gorm:"type:uuid" json:"group_id"`
	Group     *Group     `json:"group,omitempty"`
	Role      string     `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Belts lists the rank names in ascending order.
var Belts = []string{
	"Blanco", "Blanco-Amarillo", "Amarillo", "Amarillo-Naranja", "Naranja", "Naranja-Verde",
	"Verde", "Verde-Azul", "Azul", "Azul-Marrón", "Marrón", "Negro",
}

func IsValidBelt(belt string) bool {
	for _, b := range Belts {
		if b == belt {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
