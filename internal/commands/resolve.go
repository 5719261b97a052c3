package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <rate>",
		Short: "Print the tax class a VAT rate maps to (empty for the standard class)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[0], err)
			}
			svcs, err := a.services(nil)
			if err != nil {
				return err
			}
			class, err := svcs.resolver.ResolveClass(cmd.Context(), rate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), class)
			return nil
		},
	}
}
