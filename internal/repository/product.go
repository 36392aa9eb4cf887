package repository

import (
	"context"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"

	"github.com/google/uuid"
)

// ProductRepository handles database operations for products and their materials
type ProductRepository struct {
	gw *database.Gateway
}

// NewProductRepository creates a new product repository
func NewProductRepository(gw *database.Gateway) *ProductRepository {
	return &ProductRepository{gw: gw}
}

// List returns every product without relations
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return database.All[models.Product](ctx, r.gw)
}

// GetByName retrieves a product of a company by name
func (r *ProductRepository) GetByName(ctx context.Context, companyID uuid.UUID, name string) (*models.Product, error) {
	products, err := database.Find[models.Product](ctx, r.gw, nil, "company_id = ? AND name = ?", companyID, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.ErrProductNotFound
	}
	return &products[0], nil
}

// Create inserts a product and returns its generated id
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (uuid.UUID, error) {
	if err := r.gw.Insert(ctx, product); err != nil {
		return uuid.Nil, err
	}
	return product.ID, nil
}

// Update replaces every column of the product
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.gw.Update(ctx, product)
}

// Delete removes a product and its matches. It fails while the product still has materials.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, &models.Product{BaseModel: models.BaseModel{ID: id}})
}

// AddMaterial inserts a material for an existing product
func (r *ProductRepository) AddMaterial(ctx context.Context, material *models.Material) (uuid.UUID, error) {
	if err := r.gw.Insert(ctx, material); err != nil {
		return uuid.Nil, err
	}
	return material.ID, nil
}

// RemoveMaterial deletes a single material
func (r *ProductRepository) RemoveMaterial(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, &models.Material{BaseModel: models.BaseModel{ID: id}})
}
