package commands

import (
	"context"
	"fmt"
	"io"

	"symbiomatch-backend/cmd/symbiomatch/output"
	"symbiomatch-backend/internal/repository"
	"symbiomatch-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Company and registration flags
	newCompany   service.CreateCompanyRequest
	registration service.RegisterRequest
	companyID    string
)

// companiesCmd lists companies
var companiesCmd = &cobra.Command{
	Use:   "companies [company-id]",
	Short: "List companies, or show one company",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		svc := service.NewCompanyService(repository.NewCompanyRepository(gw), validator.New())
		return showCompanies(cmd.Context(), cmd.OutOrStdout(), svc, args)
	},
}

// companiesCreateCmd creates a company
var companiesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company",
	Long: `Create a company and print its id.

Examples:
  symbiomatch companies create --name "Nordic Timber" --nace-code 16.10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		svc := service.NewCompanyService(repository.NewCompanyRepository(gw), validator.New())
		return createCompany(cmd.Context(), cmd.OutOrStdout(), svc, &newCompany)
	},
}

// registerCmd registers a user
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a user, optionally with a new company",
	Long: `Register an application user. The user joins an existing company with --company-id,
or a company created in the same transaction with --new-company.

Examples:
  symbiomatch register --firstname Anna --lastname Lind --email anna@example.com
  symbiomatch register --firstname Erik --lastname Berg --email erik@example.com --new-company GreenBoard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		svc := service.NewRegistrationService(
			repository.NewUserRepository(gw),
			repository.NewCompanyRepository(gw),
			gw,
			validator.New(),
		)
		req, err := registrationRequest(cmd)
		if err != nil {
			return err
		}
		return registerUser(cmd.Context(), cmd.OutOrStdout(), svc, req)
	},
}

func init() {
	f := companiesCreateCmd.Flags()
	f.StringVar(&newCompany.Name, "name", "", "Company name (required)")
	f.StringVar(&newCompany.Description, "description", "", "Free text description")
	f.StringVar(&newCompany.NACECode, "nace-code", "", "NACE activity code")
	f.StringVar(&newCompany.Email, "email", "", "Contact email")
	f.StringVar(&newCompany.PhoneNumber, "phone", "", "Contact phone number")
	companiesCmd.AddCommand(companiesCreateCmd)

	r := registerCmd.Flags()
	r.StringVar(&registration.Firstname, "firstname", "", "First name (required)")
	r.StringVar(&registration.Lastname, "lastname", "", "Last name (required)")
	r.StringVar(&registration.Email, "email", "", "Email address (required)")
	r.StringVar(&registration.PhoneNumber, "phone", "", "Phone number")
	r.StringVar(&companyID, "company-id", "", "Join this existing company")
	r.String("new-company", "", "Create a company with this name and join it")

	rootCmd.AddCommand(companiesCmd, registerCmd)
}

// registrationRequest completes the flag-bound request with the company choice
func registrationRequest(cmd *cobra.Command) (*service.RegisterRequest, error) {
	req := registration
	if companyID != "" {
		id, err := uuid.Parse(companyID)
		if err != nil {
			return nil, fmt.Errorf("invalid company id %q: %w", companyID, err)
		}
		req.CompanyID = &id
	}
	if name, _ := cmd.Flags().GetString("new-company"); name != "" {
		req.NewCompany = &service.CreateCompanyRequest{Name: name}
	}
	return &req, nil
}

func showCompanies(ctx context.Context, w io.Writer, svc *service.CompanyService, args []string) error {
	var companies []service.CompanyDto
	if len(args) == 1 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid company id %q: %w", args[0], err)
		}
		company, err := svc.GetByID(ctx, id)
		if err != nil {
			return err
		}
		companies = []service.CompanyDto{*company}
	} else {
		var err error
		if companies, err = svc.List(ctx); err != nil {
			return err
		}
	}

	if jsonOutput {
		return output.JSON(w, companies)
	}
	if len(companies) == 0 {
		output.Muted(w, "No companies")
		return nil
	}
	for _, c := range companies {
		output.Row(w, c.Name, c.ID)
	}
	return nil
}

func createCompany(ctx context.Context, w io.Writer, svc *service.CompanyService, req *service.CreateCompanyRequest) error {
	id, err := svc.Create(ctx, req)
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(w, service.CompanyDto{ID: id, Name: req.Name})
	}
	output.Success(w, "Company %s created with id %s", req.Name, id)
	return nil
}

func registerUser(ctx context.Context, w io.Writer, svc *service.RegistrationService, req *service.RegisterRequest) error {
	resp, err := svc.Register(ctx, req)
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(w, resp)
	}
	output.Success(w, "User %s registered with id %s", req.Email, resp.UserID)
	if resp.CompanyID != nil {
		output.Row(w, "company", *resp.CompanyID)
	}
	return nil
}
