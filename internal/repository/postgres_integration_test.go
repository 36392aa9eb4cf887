//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"

	"symbiomatch-backend/internal/database"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// PostgresRepositoryTestSuite runs the relational rules against a real Postgres
type PostgresRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	gw            *database.Gateway
	companies     *CompanyRepository
	products      *ProductRepository
	matches       *MatchRepository
	users         *UserRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *PostgresRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.gw = database.NewGateway(suite.baseTestSuite.DB)
	suite.companies = NewCompanyRepository(suite.gw)
	suite.products = NewProductRepository(suite.gw)
	suite.matches = NewMatchRepository(suite.gw)
	suite.users = NewUserRepository(suite.gw)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *PostgresRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *PostgresRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *PostgresRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCompanyLifecycle creates a full company graph and deletes it
func (suite *PostgresRepositoryTestSuite) TestCompanyLifecycle() {
	company := suite.factories.Company.Create()
	_, err := suite.companies.Create(suite.ctx, company)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.companies.SetLocation(suite.ctx, company.ID, suite.factories.Location.Create()))

	product := suite.factories.Product.WithCompany(company.ID)
	_, err = suite.products.Create(suite.ctx, product)
	suite.Require().NoError(err)
	materialID, err := suite.products.AddMaterial(suite.ctx, suite.factories.Material.WithProduct(product.ID))
	suite.Require().NoError(err)

	user := suite.factories.User.WithCompany(company.ID)
	suite.Require().NoError(suite.users.Create(suite.ctx, user))

	matchID, err := suite.matches.Create(suite.ctx, suite.factories.Match.WithProduct(product.ID))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.matches.LinkCompany(suite.ctx, company.ID, matchID))
	suite.Require().NoError(suite.matches.LinkUser(suite.ctx, user.ID, matchID))

	err = suite.companies.Delete(suite.ctx, company.ID)
	suite.True(errors.Is(err, &apperrors.ConstraintViolationError{Kind: apperrors.ConstraintRestrict}))

	suite.Require().NoError(suite.products.RemoveMaterial(suite.ctx, materialID))
	suite.Require().NoError(suite.companies.Delete(suite.ctx, company.ID))

	found, err := suite.users.FindByID(suite.ctx, user.ID)
	suite.Require().NoError(err)
	suite.Nil(found.CompanyID)
	_, err = suite.matches.GetByID(suite.ctx, matchID)
	suite.ErrorIs(err, apperrors.ErrMatchNotFound)
}

// TestDriverErrorsAreTranslated tests the Postgres error paths
func (suite *PostgresRepositoryTestSuite) TestDriverErrorsAreTranslated() {
	_, err := suite.products.Create(suite.ctx, suite.factories.Product.WithCompany(uuid.New()))
	suite.True(errors.Is(err, &apperrors.ConstraintViolationError{Entity: "product", Kind: apperrors.ConstraintForeignKey}))

	suite.Require().NoError(suite.users.Create(suite.ctx, suite.factories.User.WithEmail("same@test.com")))
	err = suite.users.Create(suite.ctx, suite.factories.User.WithEmail("same@test.com"))
	suite.True(errors.Is(err, &apperrors.ConstraintViolationError{Entity: "user", Kind: apperrors.ConstraintDuplicateKey}))
}

// TestConcurrentUpdate tests the version check on Postgres
func (suite *PostgresRepositoryTestSuite) TestConcurrentUpdate() {
	company := suite.factories.Company.Create()
	_, err := suite.companies.Create(suite.ctx, company)
	suite.Require().NoError(err)

	stale := *company
	company.Name = "first"
	suite.Require().NoError(suite.companies.Update(suite.ctx, company))

	stale.Name = "second"
	suite.True(apperrors.IsConflict(suite.companies.Update(suite.ctx, &stale)))
}

func TestPostgresRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresRepositoryTestSuite))
}
