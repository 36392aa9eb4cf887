package repository

import (
	"context"

	"symbiomatch-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// CompanyRepositoryInterface defines the interface for company repository operations
type CompanyRepositoryInterface interface {
	Create(ctx context.Context, company *models.Company) (uuid.UUID, error)
	List(ctx context.Context) ([]models.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetByName(ctx context.Context, name string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetLocation(ctx context.Context, companyID uuid.UUID, location *models.Location) error
}

// ProductRepositoryInterface defines the interface for product repository operations
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByName(ctx context.Context, companyID uuid.UUID, name string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (uuid.UUID, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMaterial(ctx context.Context, material *models.Material) (uuid.UUID, error)
	RemoveMaterial(ctx context.Context, id uuid.UUID) error
}

// MatchRepositoryInterface defines the interface for match repository operations
type MatchRepositoryInterface interface {
	Create(ctx context.Context, match *models.Match) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	UpdateState(ctx context.Context, id uuid.UUID, state models.MatchState) error
	Delete(ctx context.Context, id uuid.UUID) error
	LinkCompany(ctx context.Context, companyID, matchID uuid.UUID) error
	UnlinkCompany(ctx context.Context, companyID, matchID uuid.UUID) error
	LinkUser(ctx context.Context, userID string, matchID uuid.UUID) error
	UnlinkUser(ctx context.Context, userID string, matchID uuid.UUID) error
}

// UserRepositoryInterface is the identity lookup consumed by the query handlers and services
type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// Transactor runs a unit of work in one transaction carried on the context
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
