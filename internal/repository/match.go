package repository

import (
	"context"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"

	"github.com/google/uuid"
)

// MatchRepository handles database operations for matches and their participants
type MatchRepository struct {
	gw *database.Gateway
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(gw *database.Gateway) *MatchRepository {
	return &MatchRepository{gw: gw}
}

// Create inserts a match and returns its generated id
func (r *MatchRepository) Create(ctx context.Context, match *models.Match) (uuid.UUID, error) {
	if err := r.gw.Insert(ctx, match); err != nil {
		return uuid.Nil, err
	}
	return match.ID, nil
}

// GetByID retrieves a match with its product and participant links
func (r *MatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return database.Get[models.Match](ctx, r.gw, id,
		database.IncludeProduct,
		database.IncludeCompanyMatches,
		database.IncludeUserMatches,
	)
}

// UpdateState sets the state of a match. Any state of the closed set may follow any other.
func (r *MatchRepository) UpdateState(ctx context.Context, id uuid.UUID, state models.MatchState) error {
	if !state.IsValid() {
		return apperrors.ErrInvalidMatchState
	}
	return r.gw.Transaction(ctx, func(ctx context.Context) error {
		match, err := database.Get[models.Match](ctx, r.gw, id)
		if err != nil {
			return err
		}
		match.State = state
		return r.gw.Update(ctx, match)
	})
}

// Delete removes a match and every company and user link to it
func (r *MatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.gw.Delete(ctx, &models.Match{BaseModel: models.BaseModel{ID: id}})
}

// LinkCompany makes a company a participant of a match
func (r *MatchRepository) LinkCompany(ctx context.Context, companyID, matchID uuid.UUID) error {
	return r.gw.Insert(ctx, &models.CompanyMatch{CompanyID: companyID, MatchID: matchID})
}

// UnlinkCompany removes a company from a match
func (r *MatchRepository) UnlinkCompany(ctx context.Context, companyID, matchID uuid.UUID) error {
	return r.gw.Remove(ctx, &models.CompanyMatch{CompanyID: companyID, MatchID: matchID})
}

// LinkUser makes a user a participant of a match
func (r *MatchRepository) LinkUser(ctx context.Context, userID string, matchID uuid.UUID) error {
	return r.gw.Insert(ctx, &models.UserMatch{UserID: userID, MatchID: matchID})
}

// UnlinkUser removes a user from a match
func (r *MatchRepository) UnlinkUser(ctx context.Context, userID string, matchID uuid.UUID) error {
	return r.gw.Remove(ctx, &models.UserMatch{UserID: userID, MatchID: matchID})
}
