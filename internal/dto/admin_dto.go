package dto

// CreateUserInput provisions an account plus its full profile in one call.
// Role defaults to "user" when empty; only admins reach this endpoint.
type CreateUserInput struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FullName  string  `json:"full_name" binding:"required"`
	Surnames  string  `json:"surnames"`
	Phone     string  `json:"phone"`
	Age       *int    `json:"age" binding:"omitempty,gte=0"`
	Address   string  `json:"address"`
	TutorName string  `json:"tutor_name"`
	Belt      string  `json:"belt"`
	GroupID   *string `json:"group_id"`
	Role      string  `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserInput carries nil for fields the admin did not touch. GroupID
// follows the form convention: nil leaves the assignment alone, an empty
// string clears it, a uuid sets it.
type UpdateUserInput struct {
	FullName  *string `json:"full_name"`
	Surnames  *string `json:"surnames"`
	Phone     *string `json:"phone"`
	Age       *int    `json:"age" binding:"omitempty,gte=0"`
	Address   *string `json:"address"`
	TutorName *string `json:"tutor_name"`
	Belt      *string `json:"belt"`
	GroupID   *string `json:"group_id"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin user"`
}
