package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"othereditor/internal/application"
)

var shellLineCmd = &cobra.Command{
	Use:   "shell-line <editor> [file]",
	Short: "Print the command that open would run",
	Long: `Print the command that open would run for a file, without starting it.

On Windows and other platforms the equivalent shell line is printed too,
e.g. cd "/home/me/vault" && code "./notes/a.md".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := GetRuntime()
		id, err := application.ValidateEditor("editorID", args[0])
		if err != nil {
			return err
		}
		override := ""
		if len(args) == 2 {
			override = args[1]
		}

		inv, err := rt.Plugin.Plan(cmd.Context(), id, override)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, inv.String())
		if inv.Dir != "" {
			fmt.Fprintln(out, inv.ShellLine(rt.Plugin.Platform()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellLineCmd)
}
