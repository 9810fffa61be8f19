package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Force a refetch of the configured region's school data, ignoring the snapshot.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal(err)
		}

		n, err := svc.Refresh(cmd.Context(), cfg.Region)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("fetched %d schools for %s\n", n, cfg.Region)
	},
}
