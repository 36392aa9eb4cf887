package query

import (
	"context"

	"github.com/google/uuid"
)

// GetAllProductsHandlerInterface lists every product with materials and company
type GetAllProductsHandlerInterface interface {
	Handle(ctx context.Context) ([]ProductResponse, error)
}

// GetProductByIDHandlerInterface reads one product with materials and company
type GetProductByIDHandlerInterface interface {
	Handle(ctx context.Context, id uuid.UUID) (*ProductResponse, error)
}

// GetAllProductsByCompanyHandlerInterface lists the products of one company
type GetAllProductsByCompanyHandlerInterface interface {
	Handle(ctx context.Context, companyID uuid.UUID) ([]ProductResponse, error)
}

// GetUserProfileHandlerInterface builds the profile of a user
type GetUserProfileHandlerInterface interface {
	Handle(ctx context.Context, userID string) (*UserProfileResponse, error)
}

// GetMatchesByUserHandlerInterface builds the match history of a user
type GetMatchesByUserHandlerInterface interface {
	Handle(ctx context.Context, userID string) ([]MatchResponse, error)
}
