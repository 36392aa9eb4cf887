package models

import (
	"time"

	"github.com/google/uuid"
)

// Material is a quantity of some raw material offered as part of a Product
type Material struct {
	BaseModel
	Name              string    `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Description       string    `json:"description" gorm:"size:500" validate:"max=500"`
	Category          string    `json:"category" gorm:"size:100" validate:"max=100"`
	AvailableQuantity int       `json:"available_quantity" gorm:"not null" validate:"gte=0"`
	UnitOfMeasure     string    `json:"unit_of_measure" gorm:"size:20;not null" validate:"required,max=20"`
	ExpiresAt         time.Time `json:"expires_at" gorm:"not null" validate:"required"`
	ProductID         uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for Material
func (Material) TableName() string {
	return "materials"
}
