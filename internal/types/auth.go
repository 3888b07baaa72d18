//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// UserType identifies which actor a logged-in user is.
type UserType string

const (
	UserTypeJobSeeker UserType = "jobseeker"
	UserTypeEmployer  UserType = "employer"
	UserTypeAdmin     UserType = "admin"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeJobSeeker, UserTypeEmployer, UserTypeAdmin:
		return true
	default:
		return false
	}
}

// User is the identity of the logged-in account as returned by the backend.
type User struct {
	ID    ID       `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Phone string   `json:"phone,omitempty"`
	Type  UserType `json:"type"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response with user data and authentication token.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
