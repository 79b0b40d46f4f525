package model

import "time"

// User role constants
const (
	UserRoleAdmin        = "admin"
	UserRoleProfessional = "professional"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User represents a system user. Users with the professional role form
// the practitioner roster appointments are assigned to.
type User struct {
	Base
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	Password     string     `json:"password,omitempty" db:"-"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	Specialty    string     `json:"specialty,omitempty" db:"specialty"`
	Status       string     `json:"status" db:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required,oneof=admin professional"`
	Specialty string `json:"specialty"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	Name      *string `json:"name"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin professional"`
	Specialty *string `json:"specialty"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// TokenClaims is what the auth middleware extracts from a valid token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}
