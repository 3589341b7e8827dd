package dto

import "judoacademy.app/hub/internal/model"

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignupInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FullName  string `json:"full_name" binding:"required"`
	Surnames  string `json:"surnames"`
	Phone     string `json:"phone"`
	Age       *int   `json:"age" binding:"omitempty,gte=0"`
	Address   string `json:"address"`
	TutorName string `json:"tutor_name"`
	Belt      string `json:"belt"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *model.User    `json:"user"`
	Profile     *model.Profile `json:"profile"`
}

// SessionResponse mirrors the "who is logged in" state: a null user means the
// anonymous state, a user with a null profile means the profile fetch failed
// and the caller should not treat that as a logout.
type SessionResponse struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
}

type PasswordResetInput struct {
	Email string `json:"email" binding:"required,email"`
}

type PasswordResetConfirmInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
