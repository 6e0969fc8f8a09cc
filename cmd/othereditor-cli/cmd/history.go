package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"othereditor/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent editor launches",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := commands.NewRecentLaunchesCommand(GetRuntime().Plugin.History(), historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No launches recorded.")
			return nil
		}
		for _, rec := range records {
			fmt.Fprintln(cmd.OutOrStdout(), rec.Summary())
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", commands.DefaultHistoryLimit, "number of launches to show")
	rootCmd.AddCommand(historyCmd)
}
