package dto

import "github.com/mesa-admin/resto-bo-api/internal/models"

// InviteUserRequest creates a back-office account with a generated temporary
// password. Staff invitations must carry the restaurant they belong to.
type InviteUserRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	FullName     string  `json:"full_name" validate:"required,min=2"`
	Role         string  `json:"role" validate:"required,oneof=OWNER MANAGER STAFF"`
	RestaurantID *string `json:"restaurant_id,omitempty"`
	Position     *string `json:"position,omitempty"`
}

// InviteUserResponse returns the created user plus the one-time temporary
// password. The password is only ever returned here.
type InviteUserResponse struct {
	User              models.User `json:"user"`
	TemporaryPassword string      `json:"temporary_password"`
}

// UpdateUserRequest patches mutable account fields. Nil fields are left
// untouched.
type UpdateUserRequest struct {
	FullName     *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=OWNER MANAGER STAFF"`
	RestaurantID *string `json:"restaurant_id,omitempty"`
	Position     *string `json:"position,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}
