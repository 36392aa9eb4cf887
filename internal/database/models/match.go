package models

import (
	"time"

	"github.com/google/uuid"
)

// Match pairs companies and users around one Product. It is shared by both join
// tables and owned by neither side.
type Match struct {
	BaseModel
	MatchedOn time.Time  `json:"matched_on" gorm:"not null" validate:"required"`
	State     MatchState `json:"state" gorm:"type:varchar(20);not null" validate:"required,match_state"`
	ProductID uuid.UUID  `json:"product_id" gorm:"type:uuid;not null;index" validate:"required"`

	// Relationships
	Product        *Product       `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CompanyMatches []CompanyMatch `json:"company_matches,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
	UserMatches    []UserMatch    `json:"user_matches,omitempty" gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Match
func (Match) TableName() string {
	return "matches"
}

// CompanyMatch links a Company to a Match
type CompanyMatch struct {
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;primaryKey" validate:"required"`
	MatchID   uuid.UUID `json:"match_id" gorm:"type:uuid;primaryKey;index" validate:"required"`

	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Match   *Match   `json:"match,omitempty" gorm:"foreignKey:MatchID"`
}

// TableName returns the table name for CompanyMatch
func (CompanyMatch) TableName() string {
	return "company_matches"
}

// PrimaryKey returns the composite key
func (cm *CompanyMatch) PrimaryKey() map[string]any {
	return map[string]any{"company_id": cm.CompanyID, "match_id": cm.MatchID}
}

// UserMatch links an ApplicationUser to a Match
type UserMatch struct {
	UserID  string    `json:"user_id" gorm:"size:64;primaryKey" validate:"required"`
	MatchID uuid.UUID `json:"match_id" gorm:"type:uuid;primaryKey;index" validate:"required"`

	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Match *Match `json:"match,omitempty" gorm:"foreignKey:MatchID"`
}

// TableName returns the table name for UserMatch
func (UserMatch) TableName() string {
	return "user_matches"
}

// PrimaryKey returns the composite key
func (um *UserMatch) PrimaryKey() map[string]any {
	return map[string]any{"user_id": um.UserID, "match_id": um.MatchID}
}
