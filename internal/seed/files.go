package seed

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Plain structures that mirror the YAML files under the seed directory

type LocationData struct {
	Country    string `yaml:"country"`
	Region     string `yaml:"region"`
	City       string `yaml:"city"`
	Address    string `yaml:"address"`
	PostalCode string `yaml:"postal_code"`
	Latitude   string `yaml:"latitude"`
	Longitude  string `yaml:"longitude"`
}

type CompanyData struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	NACECode    string        `yaml:"nace_code"`
	Email       string        `yaml:"email"`
	PhoneNumber string        `yaml:"phone_number"`
	Location    *LocationData `yaml:"location,omitempty"`
}

type UserData struct {
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Email       string `yaml:"email"`
	PhoneNumber string `yaml:"phone_number,omitempty"`
	CompanyName string `yaml:"company_name,omitempty"`
}

type MaterialData struct {
	Name              string    `yaml:"name"`
	Description       string    `yaml:"description"`
	Category          string    `yaml:"category"`
	AvailableQuantity int       `yaml:"available_quantity"`
	UnitOfMeasure     string    `yaml:"unit_of_measure"`
	ExpiresAt         time.Time `yaml:"expires_at"`
}

type ProductData struct {
	Name        string         `yaml:"name"`
	CompanyName string         `yaml:"company_name"`
	CreatedOn   time.Time      `yaml:"created_on"`
	ExpiresAt   time.Time      `yaml:"expires_at"`
	Materials   []MaterialData `yaml:"materials,omitempty"`
}

type MatchData struct {
	ProductName string    `yaml:"product_name"`
	CompanyName string    `yaml:"company_name"` // owner of the product
	MatchedOn   time.Time `yaml:"matched_on"`
	State       string    `yaml:"state"`
	Companies   []string  `yaml:"companies,omitempty"`
	Users       []string  `yaml:"users,omitempty"` // emails
}

type CompaniesFile struct {
	Companies []CompanyData `yaml:"companies"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type ProductsFile struct {
	Products []ProductData `yaml:"products"`
}

type MatchesFile struct {
	Matches []MatchData `yaml:"matches"`
}

// Data is everything read from one seed directory
type Data struct {
	Companies []CompanyData
	Users     []UserData
	Products  []ProductData
	Matches   []MatchData
}

// ReadDir collects every *.yaml file below dir. A file contributes to a kind when its path
// contains the kind name, e.g. data/companies.yaml or data/companies/north.yaml.
func ReadDir(dir string) (*Data, error) {
	data := &Data{}

	var companies []CompaniesFile
	if err := readFiles(dir, "companies", &companies); err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	for _, f := range companies {
		data.Companies = append(data.Companies, f.Companies...)
	}

	var users []UsersFile
	if err := readFiles(dir, "users", &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, f := range users {
		data.Users = append(data.Users, f.Users...)
	}

	var products []ProductsFile
	if err := readFiles(dir, "products", &products); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	for _, f := range products {
		data.Products = append(data.Products, f.Products...)
	}

	var matches []MatchesFile
	if err := readFiles(dir, "matches", &matches); err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	for _, f := range matches {
		data.Matches = append(data.Matches, f.Matches...)
	}

	return data, nil
}

func readFiles[T any](dir, kind string, out *[]T) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || !strings.Contains(rel, kind) {
			return err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var file T
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		*out = append(*out, file)
		return nil
	})
}
