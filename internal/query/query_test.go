package query

import (
	"context"
	"testing"
	"time"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/repository"
	"symbiomatch-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// QueryHandlersTestSuite runs every query handler against an in-memory store
type QueryHandlersTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	gw            *database.Gateway
	factories     *testutils.FactorySet
	ctx           context.Context

	allProducts     *GetAllProductsHandler
	productByID     *GetProductByIDHandler
	companyProducts *GetAllProductsByCompanyHandler
	userProfile     *GetUserProfileHandler
	matchesByUser   *GetMatchesByUserHandler
	companies       *repository.CompanyRepository
	products        *repository.ProductRepository
	matches         *repository.MatchRepository
	users           *repository.UserRepository
}

// SetupSuite runs before all tests in the suite
func (suite *QueryHandlersTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupSQLiteSuite(suite.T())
	suite.gw = database.NewGateway(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()

	suite.companies = repository.NewCompanyRepository(suite.gw)
	suite.products = repository.NewProductRepository(suite.gw)
	suite.matches = repository.NewMatchRepository(suite.gw)
	suite.users = repository.NewUserRepository(suite.gw)

	suite.allProducts = NewGetAllProductsHandler(suite.gw)
	suite.productByID = NewGetProductByIDHandler(suite.gw)
	suite.companyProducts = NewGetAllProductsByCompanyHandler(suite.gw)
	suite.userProfile = NewGetUserProfileHandler(suite.gw, suite.users)
	suite.matchesByUser = NewGetMatchesByUserHandler(suite.gw, suite.users)
}

// SetupTest runs before each test
func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *QueryHandlersTestSuite) createCompany(name string) uuid.UUID {
	id, err := suite.companies.Create(suite.ctx, &models.Company{Name: name})
	suite.Require().NoError(err)
	return id
}

func (suite *QueryHandlersTestSuite) createProduct(companyID uuid.UUID, name string, createdOn time.Time) uuid.UUID {
	id, err := suite.products.Create(suite.ctx, &models.Product{Name: name, CompanyID: companyID, CreatedOn: createdOn})
	suite.Require().NoError(err)
	return id
}

// TestGetAllProductsByCompany covers the company product listing scenario
func (suite *QueryHandlersTestSuite) TestGetAllProductsByCompany() {
	createdOn := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	acme := suite.createCompany("Acme")
	widget := suite.createProduct(acme, "Widget", createdOn)
	_, err := suite.products.AddMaterial(suite.ctx, &models.Material{
		Name:              "Steel",
		ProductID:         widget,
		AvailableQuantity: 10,
		UnitOfMeasure:     "kg",
		ExpiresAt:         createdOn.AddDate(0, 0, 30),
	})
	suite.Require().NoError(err)

	other := suite.createCompany("Other")
	suite.createProduct(other, "Gadget", createdOn)

	products, err := suite.companyProducts.Handle(suite.ctx, acme)
	suite.Require().NoError(err)
	suite.Require().Len(products, 1)

	product := products[0]
	suite.Equal(widget, product.ID)
	suite.Equal("Widget", product.Name)
	suite.True(createdOn.Equal(product.CreatedOn))
	suite.Require().NotNil(product.Company)
	suite.Equal(acme, product.Company.ID)
	suite.Equal("Acme", product.Company.Name)
	suite.Require().Len(product.Materials, 1)
	suite.Equal("Steel", product.Materials[0].Name)
	suite.Equal(10, product.Materials[0].AvailableQuantity)
	suite.Equal("kg", product.Materials[0].UnitOfMeasure)
}

// TestGetAllProductsByUnknownCompany tests that an unknown company has no products
func (suite *QueryHandlersTestSuite) TestGetAllProductsByUnknownCompany() {
	products, err := suite.companyProducts.Handle(suite.ctx, uuid.New())

	suite.NoError(err)
	suite.NotNil(products)
	suite.Empty(products)
}

// TestGetAllProducts tests listing products of every company
func (suite *QueryHandlersTestSuite) TestGetAllProducts() {
	products, err := suite.allProducts.Handle(suite.ctx)
	suite.NoError(err)
	suite.Empty(products)

	a := suite.createCompany("A")
	b := suite.createCompany("B")
	suite.createProduct(a, "P1", time.Now().UTC())
	suite.createProduct(b, "P2", time.Now().UTC())

	products, err = suite.allProducts.Handle(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(products, 2)
	owners := map[string]uuid.UUID{}
	for _, p := range products {
		suite.Require().NotNil(p.Company)
		suite.NotNil(p.Materials)
		owners[p.Name] = p.Company.ID
	}
	suite.Equal(map[string]uuid.UUID{"P1": a, "P2": b}, owners)
}

// TestGetProductByID tests reading one product
func (suite *QueryHandlersTestSuite) TestGetProductByID() {
	company := suite.createCompany("Acme")
	location := suite.factories.Location.Create()
	suite.Require().NoError(suite.companies.SetLocation(suite.ctx, company, location))
	id := suite.createProduct(company, "Widget", time.Now().UTC())

	product, err := suite.productByID.Handle(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Widget", product.Name)
	suite.Empty(product.Materials)
	suite.Require().NotNil(product.Company)
	suite.Equal(company, product.Company.ID)
}

// TestGetProductByIDNotFound tests that a missing product is reported, not returned empty
func (suite *QueryHandlersTestSuite) TestGetProductByIDNotFound() {
	product, err := suite.productByID.Handle(suite.ctx, uuid.New())

	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrProductNotFound)
}

// TestGetMatchesByUser covers the two company match scenario
func (suite *QueryHandlersTestSuite) TestGetMatchesByUser() {
	a := suite.createCompany("A")
	b := suite.createCompany("B")
	productOfA := suite.createProduct(a, "Pallets", time.Now().UTC())

	user := suite.factories.User.WithCompany(a)
	suite.Require().NoError(suite.users.Create(suite.ctx, user))

	matchID, err := suite.matches.Create(suite.ctx, suite.factories.Match.WithProduct(productOfA))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.matches.LinkCompany(suite.ctx, a, matchID))
	suite.Require().NoError(suite.matches.LinkCompany(suite.ctx, b, matchID))
	suite.Require().NoError(suite.matches.LinkUser(suite.ctx, user.ID, matchID))

	matches, err := suite.matchesByUser.Handle(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(matches, 1)

	match := matches[0]
	suite.Equal(matchID, match.ID)
	suite.Equal(models.MatchStatePending, match.State)
	suite.Require().NotNil(match.Product)
	suite.Equal(productOfA, match.Product.ID)
	// the company is the user's own, even though B is also part of the match
	suite.Require().NotNil(match.Company)
	suite.Equal(a, match.Company.ID)
}

// TestGetMatchesByUserOrdering tests that the newest match comes first
func (suite *QueryHandlersTestSuite) TestGetMatchesByUserOrdering() {
	company := suite.createCompany("A")
	product := suite.createProduct(company, "Pallets", time.Now().UTC())
	user := suite.factories.User.WithCompany(company)
	suite.Require().NoError(suite.users.Create(suite.ctx, user))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		match := suite.factories.Match.WithProduct(product)
		match.MatchedOn = base.AddDate(0, i, 0)
		id, err := suite.matches.Create(suite.ctx, match)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.matches.LinkUser(suite.ctx, user.ID, id))
		ids = append(ids, id)
	}

	matches, err := suite.matchesByUser.Handle(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(matches, 3)
	suite.Equal([]uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{matches[0].ID, matches[1].ID, matches[2].ID})
}

// TestGetMatchesByUnknownUser tests the not found path
func (suite *QueryHandlersTestSuite) TestGetMatchesByUnknownUser() {
	matches, err := suite.matchesByUser.Handle(suite.ctx, "missing")

	suite.Nil(matches)
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

// TestGetUserProfile tests the full profile of a user with matches
func (suite *QueryHandlersTestSuite) TestGetUserProfile() {
	company := suite.createCompany("Acme")
	product := suite.createProduct(company, "Pallets", time.Now().UTC())
	user := suite.factories.User.WithCompany(company)
	suite.Require().NoError(suite.users.Create(suite.ctx, user))

	matchID, err := suite.matches.Create(suite.ctx, suite.factories.Match.WithProduct(product))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.matches.LinkUser(suite.ctx, user.ID, matchID))

	profile, err := suite.userProfile.Handle(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Equal(user.FirstName, profile.Firstname)
	suite.Equal(user.LastName, profile.Lastname)
	suite.Equal(user.Email, profile.Email)
	suite.Equal(user.PhoneNumber, profile.PhoneNumber)
	suite.Equal("Acme", profile.CompanyName)
	suite.Require().Len(profile.MatchHistory, 1)
	suite.Equal(matchID, profile.MatchHistory[0].ID)
}

// TestGetUserProfileWithoutMatches tests that an empty history is not an error
func (suite *QueryHandlersTestSuite) TestGetUserProfileWithoutMatches() {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.users.Create(suite.ctx, user))

	profile, err := suite.userProfile.Handle(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Equal("", profile.CompanyName)
	suite.NotNil(profile.MatchHistory)
	suite.Empty(profile.MatchHistory)
}

// TestGetUserProfileUnknownUser tests the not found path
func (suite *QueryHandlersTestSuite) TestGetUserProfileUnknownUser() {
	profile, err := suite.userProfile.Handle(suite.ctx, "missing")

	suite.Nil(profile)
	suite.ErrorIs(err, apperrors.ErrUserNotFound)
}

// TestGetUserProfileAfterCompanyDeleted tests that a user outlives their company
func (suite *QueryHandlersTestSuite) TestGetUserProfileAfterCompanyDeleted() {
	company := suite.createCompany("Gone")
	user := suite.factories.User.WithCompany(company)
	suite.Require().NoError(suite.users.Create(suite.ctx, user))
	suite.Require().NoError(suite.companies.Delete(suite.ctx, company))

	profile, err := suite.userProfile.Handle(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Equal("", profile.CompanyName)
}

// TestQueryHandlersTestSuite runs the test suite
func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
