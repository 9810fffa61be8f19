package cmd

import (
	"fmt"

	"collegecost-backend/cmd/collegecost-cli/utils"
	"collegecost-backend/lib/loan"
	"collegecost-backend/services/collegecost"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var projectFlags struct {
	tuition     float64
	scholarship float64
	periods     int
	year        string
	rate        float64
	termYears   int
}

func init() {
	projectCmd.Flags().Float64Var(&projectFlags.tuition, "tuition", 0, "tuition cost per period in USD")
	projectCmd.Flags().Float64Var(&projectFlags.scholarship, "scholarship", 0, "scholarship earned per period in USD")
	projectCmd.Flags().IntVar(&projectFlags.periods, "periods", 0, "periods of study remaining")
	projectCmd.Flags().StringVar(&projectFlags.year, "year", "", "current year in college (Freshman..Senior), alternative to --periods")
	projectCmd.Flags().Float64Var(&projectFlags.rate, "rate", 0, "annual loan rate in percent")
	projectCmd.Flags().IntVar(&projectFlags.termYears, "term", 10, "repayment term in years (0 to skip amortization)")
	projectCmd.MarkFlagRequired("tuition")
	rootCmd.AddCommand(projectCmd)
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the total owed at graduation and the monthly payment retiring it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		periods := projectFlags.periods
		if projectFlags.year != "" {
			var ok bool
			periods, ok = loan.YearsRemaining[projectFlags.year]
			if !ok {
				return fmt.Errorf("unknown college year %q, expected one of Freshman, Sophomore, Junior, Senior", projectFlags.year)
			}
		}
		if periods <= 0 {
			return fmt.Errorf("either --periods or --year is required")
		}

		svc := collegecost.New(collegecost.Options{})
		est, err := svc.EstimateDegreeCost(collegecost.EstimateInput{
			TuitionPerPeriod:     projectFlags.tuition,
			ScholarshipPerPeriod: projectFlags.scholarship,
			PeriodsRemaining:     periods,
			AnnualRatePct:        projectFlags.rate,
			TermYears:            projectFlags.termYears,
		})
		if err != nil {
			return err
		}

		t := utils.NewTable()
		t.AppendRow(prettytable.Row{"net cost per period", utils.FormatCurrency(est.NetPeriodCost)})
		t.AppendRow(prettytable.Row{"interest per period", utils.FormatCurrency(est.Projection.PeriodInterest)})
		t.AppendRow(prettytable.Row{"due per period", utils.FormatCurrency(est.Projection.PeriodDue)})
		t.AppendRow(prettytable.Row{"total owed at graduation", utils.FormatCurrency(est.Projection.TotalOwed)})
		if projectFlags.termYears > 0 {
			t.AppendRow(prettytable.Row{
				fmt.Sprintf("monthly payment over %d years", projectFlags.termYears),
				utils.FormatCurrency(est.MonthlyPayment),
			})
		}
		t.Render()
		return nil
	},
}
