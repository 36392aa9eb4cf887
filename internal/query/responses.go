package query

import (
	"time"

	"symbiomatch-backend/internal/database/models"

	"github.com/google/uuid"
)

// ProductResponse is a product with its materials and owning company
type ProductResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	CreatedOn time.Time          `json:"created_on"`
	ExpiresAt time.Time          `json:"expires_at"`
	Materials []MaterialResponse `json:"materials"`
	Company   *CompanyResponse   `json:"company,omitempty"`
}

// MaterialResponse is one material of a product
type MaterialResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	AvailableQuantity int       `json:"available_quantity"`
	UnitOfMeasure     string    `json:"unit_of_measure"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// CompanyResponse is the public view of a company
type CompanyResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	NACECode    string            `json:"nace_code"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phone_number"`
	Location    *LocationResponse `json:"location,omitempty"`
}

// LocationResponse is the address of a company
type LocationResponse struct {
	Country    string `json:"country"`
	Region     string `json:"region"`
	City       string `json:"city"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
}

// MatchResponse is one entry of a user's match history. Company is the company of the
// user the history was built for, not the other party of the match.
type MatchResponse struct {
	ID        uuid.UUID         `json:"id"`
	MatchedOn time.Time         `json:"matched_on"`
	State     models.MatchState `json:"state"`
	Product   *ProductResponse  `json:"product,omitempty"`
	Company   *CompanyResponse  `json:"company,omitempty"`
}

// UserProfileResponse is a user with the name of their company and their match history
type UserProfileResponse struct {
	Firstname    string          `json:"firstname"`
	Lastname     string          `json:"lastname"`
	Email        string          `json:"email"`
	PhoneNumber  string          `json:"phone_number"`
	CompanyName  string          `json:"company_name"`
	MatchHistory []MatchResponse `json:"match_history"`
}

func newProductResponse(p *models.Product) ProductResponse {
	materials := make([]MaterialResponse, 0, len(p.Materials))
	for _, m := range p.Materials {
		materials = append(materials, MaterialResponse{
			ID:                m.ID,
			Name:              m.Name,
			Description:       m.Description,
			Category:          m.Category,
			AvailableQuantity: m.AvailableQuantity,
			UnitOfMeasure:     m.UnitOfMeasure,
			ExpiresAt:         m.ExpiresAt,
		})
	}
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedOn: p.CreatedOn,
		ExpiresAt: p.ExpiresAt,
		Materials: materials,
		Company:   newCompanyResponse(p.Company),
	}
}

func newCompanyResponse(c *models.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	resp := &CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		NACECode:    c.NACECode,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
	if l := c.Location; l != nil {
		resp.Location = &LocationResponse{
			Country:    l.Country,
			Region:     l.Region,
			City:       l.City,
			Address:    l.Address,
			PostalCode: l.PostalCode,
			Latitude:   l.Latitude,
			Longitude:  l.Longitude,
		}
	}
	return resp
}
