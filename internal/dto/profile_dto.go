package dto

import "judoacademy.app/hub/internal/model"

// UpdateProfileInput is the self-service subset a member may change on their
// own profile. Role, belt and group assignments are admin-managed.
type UpdateProfileInput struct {
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	TutorName *string `json:"tutor_name"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

type ProfileResponse struct {
	Profile *model.Profile `json:"profile"`
}
