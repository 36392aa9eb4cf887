package commands

import (
	"symbiomatch-backend/cmd/symbiomatch/output"
	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/seed"

	"github.com/spf13/cobra"
)

var seedDir string

// seedCmd loads YAML seed data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load seed data from YAML files",
	Long: `Load companies, users, products and matches from the YAML files of a directory.
Rows that already exist are skipped, so the command can be run repeatedly.

Examples:
  symbiomatch seed                          # Load from SEED_DIR (default scripts/data)
  symbiomatch seed --dir ./fixtures         # Load from another directory
  symbiomatch seed --retries 60             # Wait up to a minute for Postgres`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := seedDir
		if dir == "" {
			dir = cfg.SeedDir
		}

		db, err := connect(false)
		if err != nil {
			return err
		}

		counts, err := seed.NewLoader(database.NewGateway(db)).LoadDir(cmd.Context(), dir)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return output.JSON(w, counts)
		}
		output.Section(w, "Seed data loaded from "+dir)
		output.Row(w, "companies", counts.Companies)
		output.Row(w, "locations", counts.Locations)
		output.Row(w, "users", counts.Users)
		output.Row(w, "products", counts.Products)
		output.Row(w, "materials", counts.Materials)
		output.Row(w, "matches", counts.Matches)
		output.Row(w, "links", counts.Links)
		if counts == (seed.Counts{}) {
			output.Muted(w, "Nothing new to load")
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "Directory holding the seed YAML files (defaults to SEED_DIR)")
	rootCmd.AddCommand(seedCmd)
}
