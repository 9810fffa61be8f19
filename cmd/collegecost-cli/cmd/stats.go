package cmd

import (
	"fmt"

	"collegecost-backend/cmd/collegecost-cli/utils"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <column>",
	Short: "Aggregate statistics over a numeric column, e.g. tuition_in_state.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal(err)
		}

		tbl, err := svc.GetCollegeData(cmd.Context(), cfg.Region)
		if err != nil {
			fatal(err)
		}

		stats, err := tbl.Stats(args[0])
		if err != nil {
			fatal(err)
		}

		t := utils.NewTable()
		t.AppendHeader(prettytable.Row{fmt.Sprintf("%s (%d schools)", args[0], stats.Count), ""})
		t.AppendRow(prettytable.Row{"mean", utils.FormatCurrency(stats.Mean)})
		t.AppendRow(prettytable.Row{"median", utils.FormatCurrency(stats.Median)})
		t.AppendRow(prettytable.Row{"min", utils.FormatCurrency(stats.Min)})
		t.AppendRow(prettytable.Row{"max", utils.FormatCurrency(stats.Max)})
		t.AppendRow(prettytable.Row{"std", utils.FormatCurrency(stats.Std)})
		t.Render()
	},
}
