package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"symbiomatch-backend/internal/database"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/repository"
	"symbiomatch-backend/internal/service"
	"symbiomatch-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/suite"
)

// CompanyCommandsTestSuite drives the company and registration commands against an in-memory store
type CompanyCommandsTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	companies     *service.CompanyService
	registration  *service.RegistrationService
	users         *repository.UserRepository
	ctx           context.Context
}

func (suite *CompanyCommandsTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupSQLiteSuite(suite.T())
	gw := database.NewGateway(suite.baseTestSuite.DB)
	companyRepo := repository.NewCompanyRepository(gw)
	suite.users = repository.NewUserRepository(gw)
	suite.companies = service.NewCompanyService(companyRepo, validator.New())
	suite.registration = service.NewRegistrationService(suite.users, companyRepo, gw, validator.New())
	suite.ctx = context.Background()
}

func (suite *CompanyCommandsTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

func (suite *CompanyCommandsTestSuite) TearDownTest() {
	jsonOutput = false
	companyID = ""
	registration = service.RegisterRequest{}
}

func (suite *CompanyCommandsTestSuite) TestCreateAndListCompanies() {
	var out bytes.Buffer
	suite.Require().NoError(createCompany(suite.ctx, &out, suite.companies, &service.CreateCompanyRequest{Name: "Nordic Timber"}))
	suite.Contains(out.String(), "Company Nordic Timber created")

	out.Reset()
	jsonOutput = true
	suite.Require().NoError(showCompanies(suite.ctx, &out, suite.companies, nil))

	var companies []service.CompanyDto
	suite.Require().NoError(json.Unmarshal(out.Bytes(), &companies))
	suite.Require().Len(companies, 1)
	suite.Equal("Nordic Timber", companies[0].Name)

	out.Reset()
	suite.Require().NoError(showCompanies(suite.ctx, &out, suite.companies, []string{companies[0].ID.String()}))
	suite.Contains(out.String(), companies[0].ID.String())
}

func (suite *CompanyCommandsTestSuite) TestShowCompaniesEmptyAndUnknown() {
	var out bytes.Buffer
	suite.Require().NoError(showCompanies(suite.ctx, &out, suite.companies, nil))
	suite.Contains(out.String(), "No companies")

	err := showCompanies(suite.ctx, &out, suite.companies, []string{uuid.NewString()})
	suite.ErrorIs(err, apperrors.ErrCompanyNotFound)

	err = showCompanies(suite.ctx, &out, suite.companies, []string{"not-a-uuid"})
	suite.ErrorContains(err, "invalid company id")
}

func (suite *CompanyCommandsTestSuite) TestCreateCompanyValidation() {
	var out bytes.Buffer
	err := createCompany(suite.ctx, &out, suite.companies, &service.CreateCompanyRequest{})
	suite.True(apperrors.IsValidation(err))
	suite.Empty(out.String())
}

func (suite *CompanyCommandsTestSuite) TestRegisterWithNewCompany() {
	cmd := &cobra.Command{}
	cmd.Flags().String("new-company", "", "")
	suite.Require().NoError(cmd.Flags().Set("new-company", "GreenBoard"))
	registration = service.RegisterRequest{Firstname: "Erik", Lastname: "Berg", Email: "Erik.Berg@Example.com"}

	req, err := registrationRequest(cmd)
	suite.Require().NoError(err)
	suite.Require().NotNil(req.NewCompany)

	var out bytes.Buffer
	suite.Require().NoError(registerUser(suite.ctx, &out, suite.registration, req))
	suite.Contains(out.String(), "registered")

	user, err := suite.users.FindByEmail(suite.ctx, "erik.berg@example.com")
	suite.Require().NoError(err)
	suite.Require().NotNil(user.CompanyID)

	err = registerUser(suite.ctx, &out, suite.registration, req)
	suite.ErrorIs(err, apperrors.ErrUserExists)
}

func (suite *CompanyCommandsTestSuite) TestRegistrationRequestRejectsBadCompanyID() {
	cmd := &cobra.Command{}
	cmd.Flags().String("new-company", "", "")
	companyID = "nope"

	_, err := registrationRequest(cmd)
	suite.ErrorContains(err, "invalid company id")
}

func TestCompanyCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyCommandsTestSuite))
}
