package cmd

import (
	"fmt"

	"collegecost-backend/cmd/collegecost-cli/utils"
	"collegecost-backend/services/collegecost"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schoolsCmd)
	rootCmd.AddCommand(schoolCmd)
}

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "List every school in the configured region with its published tuition.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal(err)
		}

		tbl, err := svc.GetCollegeData(cmd.Context(), cfg.Region)
		if err != nil {
			fatal(err)
		}

		t := utils.NewTable()
		t.AppendHeader(prettytable.Row{"School", "State", "In-State Tuition", "Out-of-State Tuition", "Completion Rate"})
		for i := 0; i < tbl.NumRows(); i++ {
			t.AppendRow(prettytable.Row{
				utils.FormatCell(tbl.Value("school_name", i)),
				utils.FormatCell(tbl.Value("school.state", i)),
				utils.FormatCell(tbl.Value("tuition_in_state", i)),
				utils.FormatCell(tbl.Value("tuition_out_of_state", i)),
				utils.FormatCell(tbl.Value("completion_rate", i)),
			})
		}
		t.Render()
	},
}

var schoolCmd = &cobra.Command{
	Use:   "school <name>",
	Short: "Show one school's tuition figures, with a suggestion when the name doesn't match.",
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

		name := args[0]
		hit := tbl.FindByName(name)
		if hit.NumRows() == 0 {
			fmt.Printf("no school named %q in %s\n", name, cfg.Region)
			if suggestion, ok := collegecost.SuggestSchool(tbl, name); ok {
				fmt.Printf("did you mean %q?\n", suggestion.Name)
			}
			return
		}

		t := utils.NewTable()
		for _, column := range hit.Columns() {
			t.AppendRow(prettytable.Row{column, utils.FormatCell(hit.Value(column, 0))})
		}
		t.Render()
	},
}
