package model

import (
	"time"
)

// Announcement is a promotional notice shown by the clinic. Active
// announcements past their lifetime are deactivated by a background worker.
type Announcement struct {
	ID          string     `json:"id" db:"id"`
	Description string     `json:"description" db:"description"`
	CellPhone   string     `json:"cell_phone,omitempty" db:"cell_phone"`
	Active      bool       `json:"active" db:"active"`
	ActivatedAt *time.Time `json:"activated_at,omitempty" db:"activated_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateAnnouncementRequest struct {
	Description string `json:"description" binding:"required,min=10,max=500"`
	CellPhone   string `json:"cell_phone"`
	Active      bool   `json:"active"`
}

type UpdateAnnouncementRequest struct {
	Description *string `json:"description" binding:"omitempty,min=10,max=500"`
	CellPhone   *string `json:"cell_phone"`
	Active      *bool   `json:"active"`
}
