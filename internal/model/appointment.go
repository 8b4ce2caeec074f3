package model

import (
	"time"

	"github.com/lib/pq"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusFinished  AppointmentStatus = "FINISHED"
)

// SlotDuration is the fixed length of every appointment. End times are
// derived, never stored.
const SlotDuration = 30 * time.Minute

type Appointment struct {
	ID             string            `json:"id" db:"id"`
	OwnerID        string            `json:"owner_id" db:"owner_id"`
	PetID          string            `json:"pet_id" db:"pet_id"`
	VeterinarianID string            `json:"veterinarian_id" db:"veterinarian_id"`
	ServiceIDs     pq.StringArray    `json:"service_ids" db:"service_ids"`
	StartTime      time.Time         `json:"start_time" db:"start_time"`
	Status         AppointmentStatus `json:"status" db:"status"`
	Notes          string            `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// EndTime is always start plus the fixed slot duration.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(SlotDuration)
}

// IsCancelled reports whether the appointment no longer occupies its slot.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

type CreateAppointmentRequest struct {
	OwnerID        string    `json:"owner_id" binding:"required"`
	PetID          string    `json:"pet_id" binding:"required"`
	VeterinarianID string    `json:"veterinarian_id" binding:"required"`
	ServiceIDs     []string  `json:"service_ids" binding:"required,min=1"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	Notes          string    `json:"notes" binding:"max=1000"`
}

// UpdateAppointmentRequest carries partial update semantics: nil fields
// leave the stored values untouched.
type UpdateAppointmentRequest struct {
	PetID          *string            `json:"pet_id"`
	VeterinarianID *string            `json:"veterinarian_id"`
	ServiceIDs     []string           `json:"service_ids"`
	StartTime      *time.Time         `json:"start_time"`
	Status         *AppointmentStatus `json:"status"`
	Notes          *string            `json:"notes"`
}
