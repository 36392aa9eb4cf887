package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	"symbiomatch-backend/internal/repository"
	"symbiomatch-backend/internal/seed"
	"symbiomatch-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// LoaderTestSuite loads YAML seed files into an in-memory store
type LoaderTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	gw            *database.Gateway
	loader        *seed.Loader
	ctx           context.Context
}

// SetupSuite runs before all tests in the suite
func (suite *LoaderTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupSQLiteSuite(suite.T())
	suite.gw = database.NewGateway(suite.baseTestSuite.DB)
	suite.loader = seed.NewLoader(suite.gw)
	suite.ctx = context.Background()
}

// SetupTest runs before each test
func (suite *LoaderTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *LoaderTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *LoaderTestSuite) writeFiles(files map[string]string) string {
	dir := suite.T().TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		suite.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
		suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func (suite *LoaderTestSuite) TestLoadSampleData() {
	counts, err := suite.loader.LoadDir(suite.ctx, filepath.Join("..", "..", "scripts", "data"))
	suite.Require().NoError(err)

	suite.Equal(seed.Counts{
		Companies: 3,
		Locations: 2,
		Users:     3,
		Products:  2,
		Materials: 3,
		Matches:   2,
		Links:     5,
	}, counts)

	company, err := repository.NewCompanyRepository(suite.gw).GetByName(suite.ctx, "Nordic Timber")
	suite.Require().NoError(err)
	suite.NotNil(company.LocationID)

	products, err := database.Find[models.Product](suite.ctx, suite.gw,
		[]string{database.IncludeMaterials}, "company_id = ?", company.ID)
	suite.Require().NoError(err)
	suite.Require().Len(products, 1)
	suite.Equal("Sawmill residues", products[0].Name)
	suite.Len(products[0].Materials, 2)
}

func (suite *LoaderTestSuite) TestLoadTwiceCreatesNothing() {
	dir := filepath.Join("..", "..", "scripts", "data")
	_, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().NoError(err)

	counts, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().NoError(err)
	suite.Equal(seed.Counts{}, counts)

	matches, err := database.All[models.Match](suite.ctx, suite.gw)
	suite.Require().NoError(err)
	suite.Len(matches, 2)
	links, err := database.All[models.UserMatch](suite.ctx, suite.gw)
	suite.Require().NoError(err)
	suite.Len(links, 3)
}

func (suite *LoaderTestSuite) TestLoadFromNestedFiles() {
	dir := suite.writeFiles(map[string]string{
		"companies/a.yaml": "companies:\n  - name: Alpha\n",
		"companies/b.yaml": "companies:\n  - name: Beta\n",
		"users.yaml": `users:
  - first_name: Jo
    last_name: Park
    email: Jo.Park@Example.com
    company_name: Beta
`,
	})

	counts, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().NoError(err)
	suite.Equal(2, counts.Companies)
	suite.Equal(1, counts.Users)
	suite.Zero(counts.Locations)

	user, err := repository.NewUserRepository(suite.gw).FindByEmail(suite.ctx, "jo.park@example.com")
	suite.Require().NoError(err)
	suite.Require().NotNil(user.CompanyID)
	beta, err := repository.NewCompanyRepository(suite.gw).GetByName(suite.ctx, "Beta")
	suite.Require().NoError(err)
	suite.Equal(beta.ID, *user.CompanyID)
}

func (suite *LoaderTestSuite) TestUnknownReferencesAreSkipped() {
	dir := suite.writeFiles(map[string]string{
		"users.yaml": `users:
  - first_name: Lone
    last_name: User
    email: lone@example.com
    company_name: Nowhere Ltd
`,
		"products.yaml": `products:
  - name: Orphan
    company_name: Nowhere Ltd
    created_on: 2024-01-01T00:00:00Z
`,
		"matches.yaml": `matches:
  - product_name: Orphan
    company_name: Nowhere Ltd
    matched_on: 2024-01-02T00:00:00Z
    state: pending
`,
	})

	counts, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().NoError(err)
	suite.Equal(seed.Counts{Users: 1}, counts)

	user, err := repository.NewUserRepository(suite.gw).FindByEmail(suite.ctx, "lone@example.com")
	suite.Require().NoError(err)
	suite.Nil(user.CompanyID)
}

func (suite *LoaderTestSuite) TestMatchLinksUserByEmailIgnoringCase() {
	dir := suite.writeFiles(map[string]string{
		"companies.yaml": "companies:\n  - name: Alpha\n",
		"users.yaml": `users:
  - first_name: Jo
    last_name: Park
    email: Jo.Park@Example.com
`,
		"products.yaml": `products:
  - name: Scrap
    company_name: Alpha
    created_on: 2024-01-01T00:00:00Z
`,
		"matches.yaml": `matches:
  - product_name: Scrap
    company_name: Alpha
    matched_on: 2024-01-02T00:00:00Z
    state: pending
    users: [JO.PARK@EXAMPLE.COM]
`,
	})

	counts, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().NoError(err)
	suite.Equal(1, counts.Links)

	links, err := database.All[models.UserMatch](suite.ctx, suite.gw)
	suite.Require().NoError(err)
	suite.Len(links, 1)
}

func (suite *LoaderTestSuite) TestInvalidMaterialRollsBackProduct() {
	dir := suite.writeFiles(map[string]string{
		"companies.yaml": "companies:\n  - name: Alpha\n",
		"products.yaml": `products:
  - name: Scrap
    company_name: Alpha
    created_on: 2024-01-01T00:00:00Z
    materials:
      - name: Steel
        available_quantity: -5
        unit_of_measure: kg
        expires_at: 2024-06-01T00:00:00Z
`,
	})

	_, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "Scrap")

	products, err := database.All[models.Product](suite.ctx, suite.gw)
	suite.Require().NoError(err)
	suite.Empty(products)
}

func (suite *LoaderTestSuite) TestInvalidMatchState() {
	dir := suite.writeFiles(map[string]string{
		"companies.yaml": "companies:\n  - name: Alpha\n",
		"products.yaml": `products:
  - name: Scrap
    company_name: Alpha
    created_on: 2024-01-01T00:00:00Z
`,
		"matches.yaml": `matches:
  - product_name: Scrap
    company_name: Alpha
    matched_on: 2024-01-02T00:00:00Z
    state: maybe
`,
	})

	_, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "invalid match state")
}

func (suite *LoaderTestSuite) TestMalformedFile() {
	dir := suite.writeFiles(map[string]string{
		"companies.yaml": "companies: [name: {",
	})

	_, err := suite.loader.LoadDir(suite.ctx, dir)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to load companies")
}

func TestLoaderTestSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}
