package commands

import (
	"context"
	"fmt"
	"io"

	"symbiomatch-backend/cmd/symbiomatch/output"
	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/database/models"
	"symbiomatch-backend/internal/query"
	"symbiomatch-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var companyFilter string

// productsCmd lists products
var productsCmd = &cobra.Command{
	Use:   "products [product-id]",
	Short: "Show products with their materials and company",
	Long: `Show every product, the products of one company, or a single product.

Examples:
  symbiomatch products                      # All products
  symbiomatch products --company <id>       # Products of one company
  symbiomatch products <id> --json          # One product as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}

		var products []query.ProductResponse
		switch {
		case len(args) == 1:
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q: %w", args[0], err)
			}
			product, err := query.NewGetProductByIDHandler(gw).Handle(cmd.Context(), id)
			if err != nil {
				return err
			}
			products = []query.ProductResponse{*product}
		case companyFilter != "":
			id, err := uuid.Parse(companyFilter)
			if err != nil {
				return fmt.Errorf("invalid company id %q: %w", companyFilter, err)
			}
			products, err = query.NewGetAllProductsByCompanyHandler(gw).Handle(cmd.Context(), id)
			if err != nil {
				return err
			}
		default:
			products, err = query.NewGetAllProductsHandler(gw).Handle(cmd.Context())
			if err != nil {
				return err
			}
		}

		if jsonOutput {
			return output.JSON(cmd.OutOrStdout(), products)
		}
		printProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

// profileCmd shows a user profile
var profileCmd = &cobra.Command{
	Use:   "profile <user-id>",
	Short: "Show a user with their company and match history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		users := repository.NewUserRepository(gw)
		return showProfile(cmd.Context(), cmd.OutOrStdout(), query.NewGetUserProfileHandler(gw, users), args[0])
	},
}

// matchesCmd shows the match history of a user
var matchesCmd = &cobra.Command{
	Use:   "matches <user-id>",
	Short: "Show the match history of a user, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		users := repository.NewUserRepository(gw)
		return showMatches(cmd.Context(), cmd.OutOrStdout(), query.NewGetMatchesByUserHandler(gw, users), args[0])
	},
}

func init() {
	productsCmd.Flags().StringVar(&companyFilter, "company", "", "Only show products of this company id")
	rootCmd.AddCommand(productsCmd, profileCmd, matchesCmd)
}

func openGateway() (*database.Gateway, error) {
	db, err := connect(true)
	if err != nil {
		return nil, err
	}
	return database.NewGateway(db), nil
}

func showProfile(ctx context.Context, w io.Writer, h query.GetUserProfileHandlerInterface, userID string) error {
	profile, err := h.Handle(ctx, userID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(w, profile)
	}

	output.Section(w, profile.Firstname+" "+profile.Lastname)
	output.Row(w, "email", profile.Email)
	output.Row(w, "phone", profile.PhoneNumber)
	output.Row(w, "company", profile.CompanyName)
	printMatches(w, profile.MatchHistory)
	return nil
}

func showMatches(ctx context.Context, w io.Writer, h query.GetMatchesByUserHandlerInterface, userID string) error {
	matches, err := h.Handle(ctx, userID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(w, matches)
	}
	printMatches(w, matches)
	return nil
}

func printProducts(w io.Writer, products []query.ProductResponse) {
	if len(products) == 0 {
		output.Muted(w, "No products")
		return
	}
	for _, p := range products {
		output.Section(w, p.Name)
		output.Row(w, "id", p.ID)
		if p.Company != nil {
			output.Row(w, "company", p.Company.Name)
		}
		output.Row(w, "created", p.CreatedOn.Format("2006-01-02"))
		for _, m := range p.Materials {
			output.Row(w, "material", fmt.Sprintf("%s %d %s", m.Name, m.AvailableQuantity, m.UnitOfMeasure))
		}
	}
}

func printMatches(w io.Writer, matches []query.MatchResponse) {
	if len(matches) == 0 {
		output.Muted(w, "No matches")
		return
	}
	for _, m := range matches {
		product := ""
		if m.Product != nil {
			product = m.Product.Name
		}
		line := fmt.Sprintf("%s  %-8s %s", m.MatchedOn.Format("2006-01-02"), m.State, product)
		if m.State == models.MatchStateRejected {
			output.Warning(w, "%s", line)
			continue
		}
		output.Success(w, "%s", line)
	}
}
