package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	apperrors "symbiomatch-backend/internal/errors"
	"symbiomatch-backend/internal/logger"
	"symbiomatch-backend/internal/repository"

	"github.com/google/uuid"
)

// Counts reports how many rows a load created
type Counts struct {
	Companies int
	Locations int
	Users     int
	Products  int
	Materials int
	Matches   int
	Links     int
}

// Loader writes seed data through the repositories. Rows that already exist are left
// alone, so a load can be repeated against the same database.
type Loader struct {
	gw        *database.Gateway
	companies *repository.CompanyRepository
	products  *repository.ProductRepository
	matches   *repository.MatchRepository
	users     *repository.UserRepository
}

// NewLoader creates a loader over the gateway
func NewLoader(gw *database.Gateway) *Loader {
	return &Loader{
		gw:        gw,
		companies: repository.NewCompanyRepository(gw),
		products:  repository.NewProductRepository(gw),
		matches:   repository.NewMatchRepository(gw),
		users:     repository.NewUserRepository(gw),
	}
}

// LoadDir reads the YAML files below dir and loads them
func (l *Loader) LoadDir(ctx context.Context, dir string) (Counts, error) {
	data, err := ReadDir(dir)
	if err != nil {
		return Counts{}, err
	}
	return l.Load(ctx, data)
}

// Load creates companies, users, products and matches in that order. References between
// them are resolved by company name, product name and user email.
func (l *Loader) Load(ctx context.Context, data *Data) (Counts, error) {
	var counts Counts
	log := logger.WithContext(ctx)

	companyIDs := make(map[string]uuid.UUID)
	for _, c := range data.Companies {
		id, created, err := l.createCompany(ctx, c, &counts)
		if err != nil {
			return counts, fmt.Errorf("failed to create company %s: %w", c.Name, err)
		}
		companyIDs[c.Name] = id
		if created {
			counts.Companies++
		}
	}
	log.Infof("Companies: %d created, %d total", counts.Companies, len(data.Companies))

	userIDs := make(map[string]string)
	for _, u := range data.Users {
		id, created, err := l.createUser(ctx, u, companyIDs)
		if err != nil {
			return counts, fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		userIDs[emailKey(u.Email)] = id
		if created {
			counts.Users++
		}
	}
	log.Infof("Users: %d created, %d total", counts.Users, len(data.Users))

	productIDs := make(map[string]uuid.UUID)
	for _, p := range data.Products {
		companyID, ok := companyIDs[p.CompanyName]
		if !ok {
			log.WithField("product", p.Name).Warnf("unknown company %q, product skipped", p.CompanyName)
			continue
		}
		id, created, err := l.createProduct(ctx, companyID, p, &counts)
		if err != nil {
			return counts, fmt.Errorf("failed to create product %s: %w", p.Name, err)
		}
		productIDs[productKey(p.CompanyName, p.Name)] = id
		if created {
			counts.Products++
		}
	}
	log.Infof("Products: %d created, %d total; materials: %d created", counts.Products, len(data.Products), counts.Materials)

	for _, m := range data.Matches {
		productID, ok := productIDs[productKey(m.CompanyName, m.ProductName)]
		if !ok {
			log.WithField("product", m.ProductName).Warn("unknown product, match skipped")
			continue
		}
		if err := l.createMatch(ctx, productID, m, companyIDs, userIDs, &counts); err != nil {
			return counts, fmt.Errorf("failed to create match for %s: %w", m.ProductName, err)
		}
	}
	log.Infof("Matches: %d created, %d total; participant links: %d created", counts.Matches, len(data.Matches), counts.Links)

	return counts, nil
}

func (l *Loader) createCompany(ctx context.Context, data CompanyData, counts *Counts) (uuid.UUID, bool, error) {
	existing, err := l.companies.GetByName(ctx, data.Name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return uuid.Nil, false, err
	}

	company := &models.Company{
		Name:        data.Name,
		Description: data.Description,
		NACECode:    data.NACECode,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
	}
	var id uuid.UUID
	err = l.gw.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if id, err = l.companies.Create(ctx, company); err != nil {
			return err
		}
		if data.Location == nil {
			return nil
		}
		location := &models.Location{
			Country:    data.Location.Country,
			Region:     data.Location.Region,
			City:       data.Location.City,
			Address:    data.Location.Address,
			PostalCode: data.Location.PostalCode,
			Latitude:   data.Location.Latitude,
			Longitude:  data.Location.Longitude,
		}
		if err := l.companies.SetLocation(ctx, id, location); err != nil {
			return fmt.Errorf("failed to set location: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	if data.Location != nil {
		counts.Locations++
	}
	return id, true, nil
}

func (l *Loader) createUser(ctx context.Context, data UserData, companyIDs map[string]uuid.UUID) (string, bool, error) {
	existing, err := l.users.FindByEmail(ctx, data.Email)
	if err == nil {
		return existing.ID, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return "", false, err
	}

	user := &models.User{
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
	}
	if data.CompanyName != "" {
		id, ok := companyIDs[data.CompanyName]
		if !ok {
			logger.WithContext(ctx).WithField("user", data.Email).
				Warnf("unknown company %q, user created without company", data.CompanyName)
		} else {
			user.CompanyID = &id
		}
	}

	if err := l.users.Create(ctx, user); err != nil {
		return "", false, err
	}
	return user.ID, true, nil
}

// createProduct creates a product with its materials. Materials of an existing product are not touched.
func (l *Loader) createProduct(ctx context.Context, companyID uuid.UUID, data ProductData, counts *Counts) (uuid.UUID, bool, error) {
	existing, err := l.products.GetByName(ctx, companyID, data.Name)
	if err == nil {
		return existing.ID, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return uuid.Nil, false, err
	}

	var id uuid.UUID
	err = l.gw.Transaction(ctx, func(ctx context.Context) error {
		var err error
		id, err = l.products.Create(ctx, &models.Product{
			Name:      data.Name,
			CreatedOn: data.CreatedOn,
			ExpiresAt: data.ExpiresAt,
			CompanyID: companyID,
		})
		if err != nil {
			return err
		}

		for _, m := range data.Materials {
			_, err := l.products.AddMaterial(ctx, &models.Material{
				Name:              m.Name,
				Description:       m.Description,
				Category:          m.Category,
				AvailableQuantity: m.AvailableQuantity,
				UnitOfMeasure:     m.UnitOfMeasure,
				ExpiresAt:         m.ExpiresAt,
				ProductID:         id,
			})
			if err != nil {
				return fmt.Errorf("failed to add material %s: %w", m.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	counts.Materials += len(data.Materials)
	return id, true, nil
}

// createMatch finds or creates the match of the product at data.MatchedOn and links every
// named participant that is not linked yet.
func (l *Loader) createMatch(ctx context.Context, productID uuid.UUID, data MatchData, companyIDs map[string]uuid.UUID, userIDs map[string]string, counts *Counts) error {
	state, ok := models.ParseMatchState(data.State)
	if !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidMatchState, data.State)
	}

	existing, err := database.Find[models.Match](ctx, l.gw, nil, "product_id = ?", productID)
	if err != nil {
		return err
	}
	var matchID uuid.UUID
	for _, m := range existing {
		if m.MatchedOn.Equal(data.MatchedOn) {
			matchID = m.ID
			break
		}
	}
	if matchID == uuid.Nil {
		matchID, err = l.matches.Create(ctx, &models.Match{
			MatchedOn: data.MatchedOn,
			State:     state,
			ProductID: productID,
		})
		if err != nil {
			return err
		}
		counts.Matches++
	}

	log := logger.WithContext(ctx).WithField("match_id", matchID.String())
	for _, name := range data.Companies {
		companyID, ok := companyIDs[name]
		if !ok {
			log.Warnf("unknown company %q, link skipped", name)
			continue
		}
		linked, err := linkCreated(l.matches.LinkCompany(ctx, companyID, matchID))
		if err != nil {
			return fmt.Errorf("failed to link company %s: %w", name, err)
		}
		if linked {
			counts.Links++
		}
	}
	for _, email := range data.Users {
		userID, ok := userIDs[emailKey(email)]
		if !ok {
			log.Warnf("unknown user %q, link skipped", email)
			continue
		}
		linked, err := linkCreated(l.matches.LinkUser(ctx, userID, matchID))
		if err != nil {
			return fmt.Errorf("failed to link user %s: %w", email, err)
		}
		if linked {
			counts.Links++
		}
	}
	return nil
}

// linkCreated treats a duplicate join row as an existing link
func linkCreated(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, &apperrors.ConstraintViolationError{Kind: apperrors.ConstraintDuplicateKey}) {
		return false, nil
	}
	return false, err
}

// emailKey matches the form the user repository stores
func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func productKey(company, product string) string {
	return company + "/" + product
}
