package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"empireos/internal/engine"
	"empireos/internal/ui"
)

func newProfitCmd() *cobra.Command {
	in := engine.DefaultProfitInput()

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Calculate profit per sale after marketplace fees",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := engine.CalculateProfit(in)
			out := cmd.OutOrStdout()

			profit := ui.Good.Render(ui.Money(res.Profit))
			if res.Profit <= 0 {
				profit = ui.Bad.Render(ui.Money(res.Profit))
			}
			fmt.Fprintln(out, ui.Heading(ui.IconCalc, "Profit Calculator"))
			fmt.Fprintln(out, ui.LabelValue("Net profit", profit))
			fmt.Fprintln(out, ui.LabelValue("Margin", fmt.Sprintf("%.1f%%", res.Margin)))
			fmt.Fprintln(out, ui.LabelValue("Etsy fees", ui.Money(res.Fees)))
			fmt.Fprintf(out, "%s\n", ui.Muted.Render(fmt.Sprintf("  listing %s · transaction+payment %s · offsite %s",
				ui.Money(res.ListingFee), ui.Money(res.TransactionFee), ui.Money(res.OffsiteFee))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&in.Price, "price", in.Price, "Sale price")
	cmd.Flags().Float64Var(&in.Cost, "cost", in.Cost, "Production cost")
	cmd.Flags().Float64Var(&in.Discount, "discount", in.Discount, "Discount percent (informational)")
	cmd.Flags().Float64Var(&in.AdSpend, "ad-spend", in.AdSpend, "Ad spend per sale")
	cmd.Flags().BoolVar(&in.IsOffsiteAds, "offsite", in.IsOffsiteAds, "Sale came through offsite ads (15% fee)")
	return cmd
}
