package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"empireos/internal/engine"
	"empireos/internal/ui"
)

func newSimulateCmd() *cobra.Command {
	in := engine.DefaultSimulation()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project twelve months of listings, traffic and revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			months := engine.Project(in)
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Revenue Simulator"))
			fmt.Fprintf(out, "%-6s %9s %9s %8s %9s\n", "Month", "Listings", "Visits", "Sales", "Revenue")
			for _, m := range months {
				fmt.Fprintf(out, "%-6d %9.0f %9.0f %8.1f %9s\n", m.Month, m.Listings, m.Visits, m.Sales, fmt.Sprintf("$%d", m.Revenue))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Month 12 revenue", fmt.Sprintf("$%d", months[len(months)-1].Revenue)))
			fmt.Fprintln(out, ui.LabelValue("Year total", fmt.Sprintf("$%d", engine.TotalRevenue(months))))
			return nil
		},
	}

	cmd.Flags().Float64Var(&in.StartingListings, "start", in.StartingListings, "Listings at month 0")
	cmd.Flags().Float64Var(&in.UploadRatePerWeek, "rate", in.UploadRatePerWeek, "New listings per week")
	cmd.Flags().Float64Var(&in.AvgPrice, "price", in.AvgPrice, "Average sale price")
	cmd.Flags().Float64Var(&in.ConversionRate, "conversion", in.ConversionRate, "Conversion rate in percent")
	cmd.Flags().Float64Var(&in.VisitsPerListing, "visits", in.VisitsPerListing, "Monthly visits per listing")
	return cmd
}
