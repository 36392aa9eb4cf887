package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the application user owned by the identity subsystem. Its id is an opaque
// string; the platform only reads names, contact data and the company reference.
type User struct {
	ID          string     `json:"id" gorm:"size:64;primaryKey"`
	FirstName   string     `json:"first_name" gorm:"size:100;not null" validate:"required,max=100"`
	LastName    string     `json:"last_name" gorm:"size:100;not null" validate:"required,max=100"`
	Email       string     `json:"email" gorm:"size:255;not null;uniqueIndex" validate:"required,email,max=255"`
	PhoneNumber string     `json:"phone_number" gorm:"size:40" validate:"max=40"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Company     *Company    `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	UserMatches []UserMatch `json:"user_matches,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an identifier when the identity subsystem did not provide one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PrimaryKey returns the id column
func (u *User) PrimaryKey() map[string]any {
	return map[string]any{"id": u.ID}
}
