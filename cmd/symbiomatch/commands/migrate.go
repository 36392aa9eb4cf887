package commands

import (
	"symbiomatch-backend/cmd/symbiomatch/output"
	"symbiomatch-backend/internal/database"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create every table, foreign key and composite key of the data model.
Existing tables are extended, never dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect(true)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		output.Success(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
