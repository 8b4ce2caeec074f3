package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Pet struct {
	ID        string   `json:"id" db:"id"`
	OwnerID   string   `json:"owner_id" db:"owner_id"`
	Name      string   `json:"name" db:"name"`
	Species   string   `json:"species" db:"species"`
	Breed     string   `json:"breed,omitempty" db:"breed"`
	WeightKG  float64  `json:"weight_kg" db:"weight_kg"`
	Vaccines  Vaccines `json:"vaccines,omitempty" db:"vaccines"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Vaccine struct {
	Name       string     `json:"name"`
	AppliedAt  time.Time  `json:"applied_at"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	SingleDose bool       `json:"single_dose"`
}

// Vaccines is stored as a jsonb column.
type Vaccines []Vaccine

func (v Vaccines) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func (v *Vaccines) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for vaccines", src)
	}
	return json.Unmarshal(b, v)
}

type CreatePetRequest struct {
	OwnerID  string    `json:"owner_id" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Species  string    `json:"species" binding:"required"`
	Breed    string    `json:"breed"`
	WeightKG float64   `json:"weight_kg" binding:"required,gt=0"`
	Vaccines []Vaccine `json:"vaccines"`
}

type UpdatePetRequest struct {
	Name     *string   `json:"name"`
	Breed    *string   `json:"breed"`
	WeightKG *float64  `json:"weight_kg" binding:"omitempty,gt=0"`
	Vaccines []Vaccine `json:"vaccines"`
}
