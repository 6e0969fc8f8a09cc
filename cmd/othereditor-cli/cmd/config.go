package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"othereditor/internal/application"
	"othereditor/internal/application/commands"
	"othereditor/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change editor binary paths",
	Long: `Show or change the editor binary paths stored in the plugin's data.json.

Examples:
  othereditor-cli config get
  othereditor-cli config get vscode_path
  othereditor-cli config set gvim /Applications/MacVim.app/Contents/bin/gvim
  othereditor-cli config set gvim ""         # Clear the path`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [editor]",
	Short: "Print configured paths",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetRuntime().Plugin.Settings().Snapshot()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			id, err := application.ValidateEditor("editorID", args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cfg.Path(id))
			return nil
		}

		for _, id := range domain.Editors {
			fmt.Fprintf(out, "%s=%s\n", id.SettingKey(), cfg.Path(id))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <editor> <path>",
	Short: "Save the absolute binary path of an editor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setCmd := commands.NewSetEditorPathCommand(GetRuntime().Plugin.Settings(), args[0], args[1])
		result, err := setCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
