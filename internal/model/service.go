package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WeightPriceRule prices a service for pets whose weight falls inside
// [MinWeight, MaxWeight], bounds inclusive. Rules are author-supplied and
// may overlap or leave gaps.
type WeightPriceRule struct {
	MinWeight float64 `json:"min_weight"`
	MaxWeight float64 `json:"max_weight"`
	Price     float64 `json:"price"`
}

// WeightPriceRules is stored as a jsonb column; order is significant.
type WeightPriceRules []WeightPriceRule

func (r WeightPriceRules) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

func (r *WeightPriceRules) Scan(src interface{}) error {
	if src == nil {
		*r = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unexpected type %T for weight price rules", src)
	}
	return json.Unmarshal(b, r)
}

// Service is a veterinary offering (consultation, grooming, surgery...).
type Service struct {
	ID               string           `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	ShortDescription string           `json:"short_description" db:"short_description"`
	LongDescription  string           `json:"long_description" db:"long_description"`
	BasePrice        float64          `json:"base_price" db:"base_price"`
	PriceByWeight    bool             `json:"price_by_weight" db:"price_by_weight"`
	Active           bool             `json:"active" db:"active"`
	WeightPriceRules WeightPriceRules `json:"weight_price_rules,omitempty" db:"weight_price_rules"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

type CreateServiceRequest struct {
	Name             string            `json:"name" binding:"required,min=5,max=40"`
	ShortDescription string            `json:"short_description" binding:"required,min=20,max=250"`
	LongDescription  string            `json:"long_description" binding:"required,min=100,max=500"`
	BasePrice        float64           `json:"base_price" binding:"required,gt=0"`
	PriceByWeight    bool              `json:"price_by_weight"`
	WeightPriceRules []WeightPriceRule `json:"weight_price_rules"`
}

type UpdateServiceRequest struct {
	Name             *string           `json:"name" binding:"omitempty,min=5,max=40"`
	ShortDescription *string           `json:"short_description" binding:"omitempty,min=20,max=250"`
	LongDescription  *string           `json:"long_description" binding:"omitempty,min=100,max=500"`
	BasePrice        *float64          `json:"base_price" binding:"omitempty,gt=0"`
	PriceByWeight    *bool             `json:"price_by_weight"`
	Active           *bool             `json:"active"`
	WeightPriceRules []WeightPriceRule `json:"weight_price_rules"`
}
