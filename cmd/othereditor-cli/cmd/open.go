package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"othereditor/internal/application"
	"othereditor/internal/application/commands"
)

var openDetach bool

var openCmd = &cobra.Command{
	Use:   "open <editor> [file...]",
	Short: "Open files in an external editor",
	Long: `Open vault files in gvim, code or nvim-qt.

Without files, the vault's active file is opened, as recorded by Obsidian in
.obsidian/workspace.json. Every file gets its own editor process.

Examples:
  othereditor-cli open code                      # Open the active file
  othereditor-cli open gvim "S01 Me/Theatre.md"  # Open one file
  othereditor-cli open code a.md b.md            # Open two files`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := GetRuntime().Plugin

		id, err := application.ValidateEditor("editorID", args[0])
		if err != nil {
			return err
		}

		files := args[1:]
		if len(files) <= 1 {
			override := ""
			if len(files) == 1 {
				override = files[0]
			}
			result, err := p.Open(ctx, id, override)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return waitFor(ctx, cmd, result)
		}

		var firstErr error
		reports := p.OpenAll(ctx, id, files)
		for _, r := range reports {
			if r.Err != nil {
				if firstErr == nil {
					firstErr = r.Err
				}
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Result.Message)
		}
		if !openDetach {
			for i, outcome := range commands.WaitAll(reports) {
				if !outcome.OK() && firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", reports[i].FilePath, outcome.Err)
				}
			}
		}
		return firstErr
	},
}

// waitFor blocks until the editor exits unless --detach was given. Process
// failures have already been notified when the outcome arrives.
func waitFor(ctx context.Context, cmd *cobra.Command, result *commands.OpenResult) error {
	if openDetach {
		return nil
	}
	select {
	case outcome := <-result.Done():
		if !outcome.OK() {
			return outcome.Err
		}
		if outcome.ExitCode != 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", result.Request.Editor.DisplayName(), outcome)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func init() {
	openCmd.Flags().BoolVarP(&openDetach, "detach", "d", false, "return once the editor has been started")
	rootCmd.AddCommand(openCmd)
}
