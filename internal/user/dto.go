package user

import (
	"github.com/google/uuid"
	"github.com/rkive-app/rkive-api/internal/permission"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserDTO struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Role     permission.Role `json:"role" validate:"required"`
	Unit     string          `json:"unit"`
	Sector   string          `json:"sector"`
	Position string          `json:"position"`
}

type UpdateUserDTO struct {
	Name               *string              `json:"name"`
	Email              *string              `json:"email" validate:"omitempty,email"`
	Role               *permission.Role     `json:"role"`
	Unit               *string              `json:"unit"`
	Sector             *string              `json:"sector"`
	Position           *string              `json:"position"`
	Active             *bool                `json:"active"`
	PermissionOverride *permission.Override `json:"permissionsOverride"`
	TeamScope          *TeamScope           `json:"teamScope"`
}

type CompleteProfileDTO struct {
	Unit     string `json:"unit" validate:"required"`
	Sector   string `json:"sector" validate:"required"`
	Position string `json:"position" validate:"required"`
}

type ConfirmResetDTO struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type UserResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     permission.Role `json:"role"`
	Unit     string          `json:"unit"`
	Sector   string          `json:"sector"`
	Position string          `json:"position"`
	Active   bool            `json:"active"`
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Unit:     u.Unit,
		Sector:   u.Sector,
		Position: u.Position,
		Active:   u.Active,
	}
}
