package model

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin        UserRole = "ADMINISTRATOR"
	UserRoleClient       UserRole = "CLIENT"
	UserRoleVeterinarian UserRole = "VETERINARIAN"
)

// User is keyed by document number, the opaque identifier every other
// entity references owners and veterinarians by.
type User struct {
	DocumentID string    `json:"document_id" db:"document_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	Role       UserRole  `json:"role" db:"role"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type CreateUserRequest struct {
	DocumentID string   `json:"document_id" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email" binding:"required,email"`
	Phone      string   `json:"phone"`
	Role       UserRole `json:"role" binding:"required,oneof=ADMINISTRATOR CLIENT VETERINARIAN"`
}
