package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taxsync/internal/taxerr"
)

func newReconcileCommand(a *app) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Insert missing and update changed tax rates, then declare the tax classes",
		Long: `Reconcile compares the declared rates of a country with the stored rates.
Missing classes are inserted, drifted rates are overwritten and the class
labels are appended to the configured class list.

Writes are not transactional: on failure the successful writes stay in place.
Appending to the class list is not idempotent, running twice lists classes twice.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := a.country(cmd.Context(), country)
			if err != nil {
				return err
			}
			svcs, err := a.services(nil)
			if err != nil {
				return err
			}

			res, err := svcs.reconcile.Reconcile(cmd.Context(), code, "cli")
			out := cmd.OutOrStdout()
			if res != nil {
				fmt.Fprintf(out, "country %s: %d inserted, %d updated, %d unchanged\n",
					res.Country, len(res.Inserted), len(res.Updated), res.Unchanged)
				for _, c := range res.Inserted {
					fmt.Fprintf(out, "  + %d %q %s\n", c.ID, c.Class, c.Rate)
				}
				for _, c := range res.Updated {
					fmt.Fprintf(out, "  ~ %d %q %s %v\n", c.ID, c.Class, c.Rate, c.Columns)
				}
			}

			var recErr *taxerr.ReconcileError
			if errors.As(err, &recErr) {
				for _, f := range recErr.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "  ! %s\n", f.Error())
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "two letter country code (default: shop country)")

	return cmd
}
