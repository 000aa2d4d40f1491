package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/xxz807/bookkeeping/internal/depreciation"
	"github.com/xxz807/bookkeeping/internal/platform/apperr"
)

func newDepreciationCommand() *cobra.Command {
	var value, salvage string
	var life int

	cmd := &cobra.Command{
		Use:   "depreciation",
		Short: "Print a straight-line depreciation schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assetValue, err := decimal.NewFromString(value)
			if err != nil {
				return apperr.Invalid("value", "%q is not a number", value)
			}
			salvageValue, err := decimal.NewFromString(salvage)
			if err != nil {
				return apperr.Invalid("salvage", "%q is not a number", salvage)
			}

			rows, err := depreciation.Schedule(depreciation.Params{
				AssetValue: assetValue,
				LifeYears:  life,
				Salvage:    salvageValue,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "YEAR\tEXPENSE\tACCUM\tBOOK VALUE\t")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n",
					r.Year,
					r.Expense.StringFixed(depreciation.Scale),
					r.Accum.StringFixed(depreciation.Scale),
					r.BookValue.StringFixed(depreciation.Scale),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "asset value (required)")
	_ = cmd.MarkFlagRequired("value")
	cmd.Flags().IntVar(&life, "life", 0, "useful life in years (required)")
	_ = cmd.MarkFlagRequired("life")
	cmd.Flags().StringVar(&salvage, "salvage", "0", "salvage value")

	return cmd
}
