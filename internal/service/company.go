package service

import (
	"context"

	"symbiomatch-backend/internal/database/models"
	"symbiomatch-backend/internal/logger"
	"symbiomatch-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CompanyService handles business logic for companies
type CompanyService struct {
	repo      repository.CompanyRepositoryInterface
	validator *validator.Validate
}

// NewCompanyService creates a new company service
func NewCompanyService(repo repository.CompanyRepositoryInterface, validator *validator.Validate) *CompanyService {
	return &CompanyService{
		repo:      repo,
		validator: validator,
	}
}

// CreateCompanyRequest represents the request to create a company
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
	NACECode    string `json:"nace_code,omitempty" validate:"max=20"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"max=40"`
}

// CompanyDto is the identifier and name of a company
type CompanyDto struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Create creates a new company and returns its id
func (s *CompanyService) Create(ctx context.Context, req *CreateCompanyRequest) (uuid.UUID, error) {
	if err := s.validator.Struct(req); err != nil {
		return uuid.Nil, validationFailed(err)
	}

	id, err := s.repo.Create(ctx, req.toModel())
	if err != nil {
		return uuid.Nil, err
	}

	logger.WithContext(ctx).WithField("company_id", id).Info("company created")
	return id, nil
}

// List returns every company
func (s *CompanyService) List(ctx context.Context) ([]CompanyDto, error) {
	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]CompanyDto, 0, len(companies))
	for _, c := range companies {
		dtos = append(dtos, CompanyDto{ID: c.ID, Name: c.Name})
	}
	return dtos, nil
}

// GetByID returns one company or a not found error
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*CompanyDto, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CompanyDto{ID: company.ID, Name: company.Name}, nil
}

func (r *CreateCompanyRequest) toModel() *models.Company {
	return &models.Company{
		Name:        r.Name,
		Description: r.Description,
		NACECode:    r.NACECode,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
	}
}
