package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxsync/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "taxsync",
		Short:   "Keep shop tax classes and rates in line with statutory VAT rates",
		Version: fmt.Sprintf("%s (commit: %s)", buildinfo.Version, buildinfo.Commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "configs/.env", "dotenv file read before the environment")

	rootCmd.AddCommand(
		newMigrateCommand(a),
		newDeclaredCommand(a),
		newReconcileCommand(a),
		newResolveCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}
