package repository

import (
	"context"
	"errors"
	"testing"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ProductRepositoryTestSuite tests the ProductRepository
type ProductRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	gw            *database.Gateway
	repo          *ProductRepository
	companyRepo   *CompanyRepository
	factories     *testutils.FactorySet
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *ProductRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupSQLiteSuite(suite.T())
	suite.gw = database.NewGateway(suite.baseTestSuite.DB)
	suite.repo = NewProductRepository(suite.gw)
	suite.companyRepo = NewCompanyRepository(suite.gw)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// SetupTest runs before each test
func (suite *ProductRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *ProductRepositoryTestSuite) createCompany() *models.Company {
	company := suite.factories.Company.Create()
	_, err := suite.companyRepo.Create(suite.ctx, company)
	suite.Require().NoError(err)
	return company
}

// TestCreateAndList tests creating products and listing them without relations
func (suite *ProductRepositoryTestSuite) TestCreateAndList() {
	company := suite.createCompany()

	id, err := suite.repo.Create(suite.ctx, suite.factories.Product.WithCompany(company.ID))
	suite.NoError(err)
	suite.NotEqual(uuid.Nil, id)
	_, err = suite.repo.Create(suite.ctx, suite.factories.Product.WithCompany(company.ID))
	suite.NoError(err)

	products, err := suite.repo.List(suite.ctx)
	suite.NoError(err)
	suite.Len(products, 2)
	for _, p := range products {
		suite.Nil(p.Company)
		suite.Empty(p.Materials)
	}
}

// TestCreateUnknownCompany tests that a product needs an existing company
func (suite *ProductRepositoryTestSuite) TestCreateUnknownCompany() {
	_, err := suite.repo.Create(suite.ctx, suite.factories.Product.WithCompany(uuid.New()))

	suite.True(errors.Is(err, &apperrors.ConstraintViolationError{Entity: "product", Kind: apperrors.ConstraintForeignKey}))
}

// TestGetByName tests looking a product up inside its company
func (suite *ProductRepositoryTestSuite) TestGetByName() {
	company := suite.createCompany()
	product := suite.factories.Product.WithCompany(company.ID)
	product.Name = "Glass cullet"
	_, err := suite.repo.Create(suite.ctx, product)
	suite.Require().NoError(err)

	found, err := suite.repo.GetByName(suite.ctx, company.ID, "Glass cullet")
	suite.NoError(err)
	suite.Equal(product.ID, found.ID)

	_, err = suite.repo.GetByName(suite.ctx, uuid.New(), "Glass cullet")
	suite.ErrorIs(err, apperrors.ErrProductNotFound)
}

// TestUpdate tests replacing the columns of a product
func (suite *ProductRepositoryTestSuite) TestUpdate() {
	company := suite.createCompany()
	product := suite.factories.Product.WithCompany(company.ID)
	_, err := suite.repo.Create(suite.ctx, product)
	suite.Require().NoError(err)

	product.Name = "Recycled steel beams"
	suite.NoError(suite.repo.Update(suite.ctx, product))

	found, err := database.Get[models.Product](suite.ctx, suite.gw, product.ID)
	suite.Require().NoError(err)
	suite.Equal("Recycled steel beams", found.Name)
}

// TestMaterials tests adding and removing materials
func (suite *ProductRepositoryTestSuite) TestMaterials() {
	company := suite.createCompany()
	product := suite.factories.Product.WithCompany(company.ID)
	_, err := suite.repo.Create(suite.ctx, product)
	suite.Require().NoError(err)

	materialID, err := suite.repo.AddMaterial(suite.ctx, suite.factories.Material.WithProduct(product.ID))
	suite.NoError(err)
	suite.NotEqual(uuid.Nil, materialID)

	// a product with materials cannot be deleted
	err = suite.repo.Delete(suite.ctx, product.ID)
	suite.True(errors.Is(err, &apperrors.ConstraintViolationError{Entity: "product", Kind: apperrors.ConstraintRestrict}))

	suite.NoError(suite.repo.RemoveMaterial(suite.ctx, materialID))
	suite.ErrorIs(suite.repo.RemoveMaterial(suite.ctx, materialID), apperrors.ErrMaterialNotFound)

	suite.NoError(suite.repo.Delete(suite.ctx, product.ID))
	suite.ErrorIs(suite.repo.Delete(suite.ctx, product.ID), apperrors.ErrProductNotFound)
}

// TestAddMaterialNegativeQuantity tests that quantities cannot go below zero
func (suite *ProductRepositoryTestSuite) TestAddMaterialNegativeQuantity() {
	company := suite.createCompany()
	product := suite.factories.Product.WithCompany(company.ID)
	_, err := suite.repo.Create(suite.ctx, product)
	suite.Require().NoError(err)

	material := suite.factories.Material.WithProduct(product.ID)
	material.AvailableQuantity = -5
	_, err = suite.repo.AddMaterial(suite.ctx, material)
	suite.True(errors.Is(err, &apperrors.ConstraintViolationError{Entity: "material", Kind: apperrors.ConstraintCheck}))
}

// TestProductRepositoryTestSuite runs the test suite
func TestProductRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}
