package models

import (
	"github.com/google/uuid"
)

// Company is the aggregate root for its Location, Products and their Materials
type Company struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:100;not null" validate:"required,max=100"`
	Description string     `json:"description" gorm:"type:text"`
	NACECode    string     `json:"nace_code" gorm:"size:20" validate:"max=20"`
	Email       string     `json:"email" gorm:"size:255" validate:"omitempty,email,max=255"`
	PhoneNumber string     `json:"phone_number" gorm:"size:40" validate:"max=40"`
	LocationID  *uuid.UUID `json:"location_id,omitempty" gorm:"type:uuid;uniqueIndex"`

	// Relationships
	Location       *Location      `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	Products       []Product      `json:"products,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Users          []User         `json:"users,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL"`
	CompanyMatches []CompanyMatch `json:"company_matches,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Company
func (Company) TableName() string {
	return "companies"
}
