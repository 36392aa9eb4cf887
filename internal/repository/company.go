package repository

import (
	"context"
	"fmt"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"

	"github.com/google/uuid"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	gw *database.Gateway
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(gw *database.Gateway) *CompanyRepository {
	return &CompanyRepository{gw: gw}
}

// Create inserts a company and returns its generated id
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) (uuid.UUID, error) {
	if err := r.gw.Insert(ctx, company); err != nil {
		return uuid.Nil, err
	}
	return company.ID, nil
}

// List returns every company, without relations and in no particular order
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	return database.All[models.Company](ctx, r.gw)
}

// GetByID retrieves a company with its location
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return database.Get[models.Company](ctx, r.gw, id, database.IncludeLocation)
}

// GetByName retrieves a company by its exact name
func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*models.Company, error) {
	companies, err := database.Find[models.Company](ctx, r.gw, nil, "name = ?", name)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, apperrors.ErrCompanyNotFound
	}
	return &companies[0], nil
}

// Update replaces every column of the company
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	return r.gw.Update(ctx, company)
}

// Delete removes a company together with its products, location and match links.
// Users of the company are kept and lose their company reference.
func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, &models.Company{BaseModel: models.BaseModel{ID: id}})
}

// SetLocation stores location as the only location of the company. A previous location is removed.
func (r *CompanyRepository) SetLocation(ctx context.Context, companyID uuid.UUID, location *models.Location) error {
	return r.gw.Transaction(ctx, func(ctx context.Context) error {
		company, err := database.Get[models.Company](ctx, r.gw, companyID)
		if err != nil {
			return err
		}
		previous := company.LocationID

		if err := r.gw.Insert(ctx, location); err != nil {
			return err
		}
		company.LocationID = &location.ID
		if err := r.gw.Update(ctx, company); err != nil {
			return fmt.Errorf("link location: %w", err)
		}

		if previous != nil {
			if err := r.gw.Delete(ctx, &models.Location{BaseModel: models.BaseModel{ID: *previous}}); err != nil && !apperrors.IsNotFound(err) {
				return fmt.Errorf("remove previous location: %w", err)
			}
		}
		return nil
	})
}
