package cmd

import (
	"collegecost-backend/cmd/collegecost-cli/utils"
	"collegecost-backend/lib/occupation"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var degreeFilter string

func init() {
	occupationsCmd.Flags().StringVar(&degreeFilter, "degree", "", "only show occupations for this degree")
	rootCmd.AddCommand(occupationsCmd)
}

var occupationsCmd = &cobra.Command{
	Use:   "occupations",
	Short: "List the degrees in the occupational dataset, or the occupations behind one degree.",
	Run: func(cmd *cobra.Command, args []string) {
		tbl, err := occupation.Load(cfg.OccupationData)
		if err != nil {
			fatal(err)
		}

		t := utils.NewTable()
		if degreeFilter == "" {
			t.AppendHeader(prettytable.Row{"College Degree"})
			for _, degree := range occupation.Degrees(tbl) {
				t.AppendRow(prettytable.Row{degree})
			}
			t.Render()
			return
		}

		rows, err := occupation.FindByDegree(tbl, degreeFilter)
		if err != nil {
			fatal(err)
		}
		t.AppendHeader(prettytable.Row{"Occupation", "Mean Hourly Wage", "Mean Annual Wage"})
		for i := 0; i < rows.NumRows(); i++ {
			t.AppendRow(prettytable.Row{
				utils.FormatCell(rows.Value("Detailed Occupation", i)),
				utils.FormatCell(rows.Value("Mean Hourly Wage", i)),
				utils.FormatCell(rows.Value("Mean Annual Wage", i)),
			})
		}
		t.Render()
	},
}
