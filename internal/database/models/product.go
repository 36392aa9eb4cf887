package models

import (
	"time"

	"github.com/google/uuid"
)

// Product belongs to one Company and is composed of Materials
type Product struct {
	BaseModel
	Name      string    `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	CreatedOn time.Time `json:"created_on" gorm:"not null" validate:"required"`
	ExpiresAt time.Time `json:"expires_at"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Company   *Company   `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Materials []Material `json:"materials,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for Product
func (Product) TableName() string {
	return "products"
}
