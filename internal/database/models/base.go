package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is implemented by every persisted row type
type Record interface {
	TableName() string
	// PrimaryKey maps key columns to their values; join rows return both columns.
	PrimaryKey() map[string]any
}

// Versioned rows reject updates made against a stale copy
type Versioned interface {
	CurrentVersion() int64
	SetVersion(v int64)
}

// BaseModel provides common fields for all models with UUID primary keys
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version" gorm:"not null;default:1"`
}

// BeforeCreate sets the UUID if not already set
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.Version == 0 {
		base.Version = 1
	}
	return nil
}

// PrimaryKey returns the id column
func (base *BaseModel) PrimaryKey() map[string]any {
	return map[string]any{"id": base.ID}
}

func (base *BaseModel) CurrentVersion() int64 {
	return base.Version
}

func (base *BaseModel) SetVersion(v int64) {
	base.Version = v
}
