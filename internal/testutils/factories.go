package testutils

import (
	"time"

	"symbiomatch-backend/internal/database/models"

	"github.com/google/uuid"
)

// now is truncated so rows read back from any store compare equal
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// LocationFactory provides methods to create test Location data
type LocationFactory struct{}

// NewLocationFactory creates a new LocationFactory
func NewLocationFactory() *LocationFactory {
	return &LocationFactory{}
}

// Create creates a test Location with default values
func (f *LocationFactory) Create() *models.Location {
	return &models.Location{
		BaseModel:  models.BaseModel{ID: uuid.New()},
		Country:    "Denmark",
		Region:     "Hovedstaden",
		City:       "Copenhagen",
		Address:    "Nyhavn 1",
		PostalCode: "1051",
		Latitude:   "55.6798",
		Longitude:  "12.5912",
	}
}

// CompanyFactory provides methods to create test Company data
type CompanyFactory struct{}

// NewCompanyFactory creates a new CompanyFactory
func NewCompanyFactory() *CompanyFactory {
	return &CompanyFactory{}
}

// Create creates a test Company with default values
func (f *CompanyFactory) Create() *models.Company {
	id := uuid.New()
	return &models.Company{
		BaseModel:   models.BaseModel{ID: id},
		Name:        "Company " + id.String()[:8],
		Description: "A test company for testing purposes",
		NACECode:    "C24.1",
		Email:       "contact-" + id.String()[:8] + "@test.com",
		PhoneNumber: "+45-1234-5678",
	}
}

// WithName sets a custom name for the company
func (f *CompanyFactory) WithName(name string) *models.Company {
	company := f.Create()
	company.Name = name
	return company
}

// WithLocation links the company to a location
func (f *CompanyFactory) WithLocation(locationID uuid.UUID) *models.Company {
	company := f.Create()
	company.LocationID = &locationID
	return company
}

// ProductFactory provides methods to create test Product data
type ProductFactory struct{}

// NewProductFactory creates a new ProductFactory
func NewProductFactory() *ProductFactory {
	return &ProductFactory{}
}

// Create creates a test Product with default values
func (f *ProductFactory) Create() *models.Product {
	return &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Steel beams",
		CreatedOn: now(),
		ExpiresAt: now().AddDate(0, 6, 0),
		CompanyID: uuid.New(),
	}
}

// WithCompany sets the owning company of the product
func (f *ProductFactory) WithCompany(companyID uuid.UUID) *models.Product {
	product := f.Create()
	product.CompanyID = companyID
	return product
}

// MaterialFactory provides methods to create test Material data
type MaterialFactory struct{}

// NewMaterialFactory creates a new MaterialFactory
func NewMaterialFactory() *MaterialFactory {
	return &MaterialFactory{}
}

// Create creates a test Material with default values
func (f *MaterialFactory) Create() *models.Material {
	return &models.Material{
		BaseModel:         models.BaseModel{ID: uuid.New()},
		Name:              "Scrap steel",
		Description:       "Offcuts from beam production",
		Category:          "Metal",
		AvailableQuantity: 120,
		UnitOfMeasure:     "kg",
		ExpiresAt:         now().AddDate(0, 3, 0),
		ProductID:         uuid.New(),
	}
}

// WithProduct sets the product the material belongs to
func (f *MaterialFactory) WithProduct(productID uuid.UUID) *models.Material {
	material := f.Create()
	material.ProductID = productID
	return material
}

// MatchFactory provides methods to create test Match data
type MatchFactory struct{}

// NewMatchFactory creates a new MatchFactory
func NewMatchFactory() *MatchFactory {
	return &MatchFactory{}
}

// Create creates a test Match with default values
func (f *MatchFactory) Create() *models.Match {
	return &models.Match{
		BaseModel: models.BaseModel{ID: uuid.New()},
		MatchedOn: now(),
		State:     models.MatchStatePending,
		ProductID: uuid.New(),
	}
}

// WithProduct sets the product the match is about
func (f *MatchFactory) WithProduct(productID uuid.UUID) *models.Match {
	match := f.Create()
	match.ProductID = productID
	return match
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values and a unique email
func (f *UserFactory) Create() *models.User {
	id := uuid.NewString()
	return &models.User{
		ID:          id,
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane." + id[:8] + "@test.com",
		PhoneNumber: "+45-8765-4321",
	}
}

// WithCompany sets the company of the user
func (f *UserFactory) WithCompany(companyID uuid.UUID) *models.User {
	user := f.Create()
	user.CompanyID = &companyID
	return user
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// FactorySet provides access to all factories
type FactorySet struct {
	Location *LocationFactory
	Company  *CompanyFactory
	Product  *ProductFactory
	Material *MaterialFactory
	Match    *MatchFactory
	User     *UserFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Location: NewLocationFactory(),
		Company:  NewCompanyFactory(),
		Product:  NewProductFactory(),
		Material: NewMaterialFactory(),
		Match:    NewMatchFactory(),
		User:     NewUserFactory(),
	}
}
