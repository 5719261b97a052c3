package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newDeclaredCommand(a *app) *cobra.Command {
	var country string
	var list bool

	cmd := &cobra.Command{
		Use:   "declared",
		Short: "Show the statutory rates declared for a country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := a.declarations()
			out := cmd.OutOrStdout()

			if list {
				codes, err := loader.Countries()
				if err != nil {
					return err
				}
				for _, code := range codes {
					fmt.Fprintln(out, code)
				}
				return nil
			}

			code, err := a.country(cmd.Context(), country)
			if err != nil {
				return err
			}
			rates, err := loader.Load(code)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CLASS\tRATE\tNAME\tPRIORITY\tORDER")
			for _, r := range rates {
				class := r.Class
				if class == "" {
					class = "(standard)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", class, formatRate(r.Rate), r.Name, formatInt(r.Priority), formatInt(r.Order))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "two letter country code (default: shop country)")
	cmd.Flags().BoolVar(&list, "list", false, "list countries that have a declaration")

	return cmd
}

func formatRate(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return v.Decimal.StringFixed(4)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
