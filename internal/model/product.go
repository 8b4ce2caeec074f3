package model

import (
	"time"
)

type ProductCategory string

const (
	ProductCategoryFood        ProductCategory = "FOOD"
	ProductCategoryToys        ProductCategory = "TOYS"
	ProductCategoryMedicine    ProductCategory = "MEDICINE"
	ProductCategoryAccessories ProductCategory = "ACCESSORIES"
	ProductCategoryHygiene     ProductCategory = "HYGIENE"
	ProductCategoryEquipment   ProductCategory = "EQUIPMENT"
)

type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Category    ProductCategory `json:"category" db:"category"`
	Price       float64         `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	Active      bool            `json:"active" db:"active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    ProductCategory `json:"category" binding:"required,oneof=FOOD TOYS MEDICINE ACCESSORIES HYGIENE EQUIPMENT"`
	Price       float64         `json:"price" binding:"required,gt=0"`
	Stock       int             `json:"stock" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *ProductCategory `json:"category" binding:"omitempty,oneof=FOOD TOYS MEDICINE ACCESSORIES HYGIENE EQUIPMENT"`
	Price       *float64         `json:"price" binding:"omitempty,gt=0"`
	Stock       *int             `json:"stock" binding:"omitempty,gte=0"`
	Active      *bool            `json:"active"`
}
