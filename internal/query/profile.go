package query

import (
	"context"
	"fmt"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/logger"
	"symbiomatch-backend/internal/repository"
)

// GetUserProfileHandler builds the profile page data of a user
type GetUserProfileHandler struct {
	gw    *database.Gateway
	users repository.UserRepositoryInterface
}

// NewGetUserProfileHandler creates a new handler. Users are resolved through the identity
// lookup and joined with the store afterwards.
func NewGetUserProfileHandler(gw *database.Gateway, users repository.UserRepositoryInterface) *GetUserProfileHandler {
	return &GetUserProfileHandler{gw: gw, users: users}
}

// Handle returns the profile or a not found error for an unknown user
func (h *GetUserProfileHandler) Handle(ctx context.Context, userID string) (*UserProfileResponse, error) {
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	company, err := companyOf(ctx, h.gw, user)
	if err != nil {
		return nil, err
	}
	history, err := matchHistory(ctx, h.gw, user, company)
	if err != nil {
		return nil, err
	}

	profile := &UserProfileResponse{
		Firstname:    user.FirstName,
		Lastname:     user.LastName,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		MatchHistory: history,
	}
	if company != nil {
		profile.CompanyName = company.Name
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id": user.ID,
		"matches": len(history),
	}).Debug("user profile built")
	return profile, nil
}

// GetMatchesByUserHandler returns the match history of a user on its own
type GetMatchesByUserHandler struct {
	gw    *database.Gateway
	users repository.UserRepositoryInterface
}

// NewGetMatchesByUserHandler creates a new handler
func NewGetMatchesByUserHandler(gw *database.Gateway, users repository.UserRepositoryInterface) *GetMatchesByUserHandler {
	return &GetMatchesByUserHandler{gw: gw, users: users}
}

// Handle returns the matches of the user, newest first
func (h *GetMatchesByUserHandler) Handle(ctx context.Context, userID string) ([]MatchResponse, error) {
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	company, err := companyOf(ctx, h.gw, user)
	if err != nil {
		return nil, err
	}
	return matchHistory(ctx, h.gw, user, company)
}

// companyOf returns the company of the user with its location, or nil for a user without one
func companyOf(ctx context.Context, gw *database.Gateway, user *models.User) (*models.Company, error) {
	if user.CompanyID == nil {
		return nil, nil
	}
	company, err := database.Get[models.Company](ctx, gw, *user.CompanyID, database.IncludeLocation)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	return company, err
}

// matchHistory projects every match the user takes part in. Each entry carries the user's
// own company.
func matchHistory(ctx context.Context, gw *database.Gateway, user *models.User, company *models.Company) ([]MatchResponse, error) {
	var matches []models.Match
	err := gw.Conn(ctx).
		Preload(database.IncludeProduct).
		Joins("JOIN user_matches ON user_matches.match_id = matches.id").
		Where("user_matches.user_id = ?", user.ID).
		Order("matches.matched_on DESC").
		Order("matches.id").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("load matches of user %s: %w", user.ID, err)
	}

	history := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		resp := MatchResponse{
			ID:        m.ID,
			MatchedOn: m.MatchedOn,
			State:     m.State,
			Company:   newCompanyResponse(company),
		}
		if m.Product != nil {
			product := newProductResponse(m.Product)
			resp.Product = &product
		}
		history = append(history, resp)
	}
	return history, nil
}
