package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/logger"
	"symbiomatch-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegistrationService registers application users, optionally together with a new company
type RegistrationService struct {
	users     repository.UserRepositoryInterface
	companies repository.CompanyRepositoryInterface
	tx        repository.Transactor
	validator *validator.Validate
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	users repository.UserRepositoryInterface,
	companies repository.CompanyRepositoryInterface,
	tx repository.Transactor,
	validator *validator.Validate,
) *RegistrationService {
	return &RegistrationService{
		users:     users,
		companies: companies,
		tx:        tx,
		validator: validator,
	}
}

// RegisterRequest represents the request to register a user. When NewCompany is set it is
// created and takes precedence over CompanyID.
type RegisterRequest struct {
	Firstname   string                `json:"firstname" validate:"required,max=100"`
	Lastname    string                `json:"lastname" validate:"required,max=100"`
	Email       string                `json:"email" validate:"required,email,max=255"`
	PhoneNumber string                `json:"phone_number,omitempty" validate:"max=40"`
	CompanyID   *uuid.UUID            `json:"company_id,omitempty"`
	NewCompany  *CreateCompanyRequest `json:"new_company,omitempty"`
}

// RegisterResponse identifies the registered user and their company
type RegisterResponse struct {
	UserID    string     `json:"user_id"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
}

// Register creates the user, and the new company if one is requested, in one transaction
func (s *RegistrationService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	user := &models.User{
		FirstName:   req.Firstname,
		LastName:    req.Lastname,
		Email:       email,
		PhoneNumber: req.PhoneNumber,
		CompanyID:   req.CompanyID,
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if req.NewCompany != nil {
			companyID, err := s.companies.Create(ctx, req.NewCompany.toModel())
			if err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
			user.CompanyID = &companyID
		}
		return s.users.Create(ctx, user)
	})
	if err != nil {
		// a concurrent registration with the same email loses on the unique index
		if errors.Is(err, &apperrors.ConstraintViolationError{Entity: "user", Kind: apperrors.ConstraintDuplicateKey}) {
			return nil, apperrors.ErrUserExists
		}
		return nil, err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"user_id":    user.ID,
		"company_id": user.CompanyID,
	}).Info("user registered")
	return &RegisterResponse{UserID: user.ID, CompanyID: user.CompanyID}, nil
}
