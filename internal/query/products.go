package query

import (
	"context"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"

	"github.com/google/uuid"
)

var productIncludes = []string{database.IncludeMaterials, database.IncludeCompany}

// GetAllProductsHandler lists every product
type GetAllProductsHandler struct {
	gw *database.Gateway
}

// NewGetAllProductsHandler creates a new handler
func NewGetAllProductsHandler(gw *database.Gateway) *GetAllProductsHandler {
	return &GetAllProductsHandler{gw: gw}
}

// Handle returns every product with materials and company, in no particular order
func (h *GetAllProductsHandler) Handle(ctx context.Context) ([]ProductResponse, error) {
	products, err := database.All[models.Product](ctx, h.gw, productIncludes...)
	if err != nil {
		return nil, err
	}
	return projectProducts(products), nil
}

// GetProductByIDHandler reads a single product
type GetProductByIDHandler struct {
	gw *database.Gateway
}

// NewGetProductByIDHandler creates a new handler
func NewGetProductByIDHandler(gw *database.Gateway) *GetProductByIDHandler {
	return &GetProductByIDHandler{gw: gw}
}

// Handle returns the product or a not found error
func (h *GetProductByIDHandler) Handle(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := database.Get[models.Product](ctx, h.gw, id, productIncludes...)
	if err != nil {
		return nil, err
	}
	resp := newProductResponse(product)
	return &resp, nil
}

// GetAllProductsByCompanyHandler lists the products of a company
type GetAllProductsByCompanyHandler struct {
	gw *database.Gateway
}

// NewGetAllProductsByCompanyHandler creates a new handler
func NewGetAllProductsByCompanyHandler(gw *database.Gateway) *GetAllProductsByCompanyHandler {
	return &GetAllProductsByCompanyHandler{gw: gw}
}

// Handle returns the products of the company. An unknown company has no products.
func (h *GetAllProductsByCompanyHandler) Handle(ctx context.Context, companyID uuid.UUID) ([]ProductResponse, error) {
	products, err := database.Find[models.Product](ctx, h.gw, productIncludes, "company_id = ?", companyID)
	if err != nil {
		return nil, err
	}
	return projectProducts(products), nil
}

func projectProducts(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, newProductResponse(&products[i]))
	}
	return out
}
