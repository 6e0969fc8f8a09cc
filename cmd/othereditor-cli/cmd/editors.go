package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"othereditor/internal/application/commands"
)

var editorsCmd = &cobra.Command{
	Use:   "editors",
	Short: "List the supported editors and how they resolve",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := GetRuntime()
		statuses, err := commands.NewListEditorsCommand(rt.Plugin.Settings(), rt.Plugin.Platform()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Platform: %s\n", rt.Plugin.Platform())
		for _, st := range statuses {
			if st.Problem != "" {
				fmt.Fprintf(out, "%-8s %-7s %s\n", st.Editor, st.Name, st.Problem)
				continue
			}
			fmt.Fprintf(out, "%-8s %-7s %s\n", st.Editor, st.Name, st.Command)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editorsCmd)
}
