package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxsync/internal/database"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tax rate, option and audit tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, a.cfg.DBTablePrefix, a.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tables migrated")
			return nil
		},
	}
}
