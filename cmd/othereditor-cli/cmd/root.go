package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"othereditor/internal/adapters/notify"
	"othereditor/internal/bootstrap"
	"othereditor/internal/config"
)

var (
	v  = config.New()
	rt *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "othereditor-cli",
	Short: "Open vault files in an external editor",
	Long: `othereditor-cli opens files of an Obsidian vault in gVim, VS Code or
nvim-qt, using the same settings as the "Open in other editor" plugin.

On macOS the absolute path of each editor binary must be saved first:
  othereditor-cli config set code "/Applications/Visual Studio Code.app/Contents/Resources/app/bin/code"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
			v.Set(config.KeyHistory, false)
		}
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		rt, err = bootstrap.Start(cmd.Context(), cfg, notify.NewTerminal(cmd.ErrOrStderr()), cmd.ErrOrStderr())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if rt == nil {
			return nil
		}
		return rt.Close()
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("vault", "v", config.VaultPath(), "path to the vault")
	flags.String("settings-path", "", "settings document (default <vault>/.obsidian/plugins/open-in-other-editor/data.json)")
	flags.String("launch-mode", "", "exec or shell (Windows and other platforms)")
	flags.String("platform", "", "launch conventions to use: macos, windows or other (default detected)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("no-history", false, "do not record launches")

	bindFlag(v, config.KeyVault, "vault")
	bindFlag(v, config.KeySettingsPath, "settings-path")
	bindFlag(v, config.KeyLaunchMode, "launch-mode")
	bindFlag(v, config.KeyPlatform, "platform")
	bindFlag(v, config.KeyLogLevel, "log-level")
}

// bindFlag lets an explicitly set flag win over env and config file
func bindFlag(v *viper.Viper, key, flag string) {
	_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

// GetRuntime returns the initialized runtime
func GetRuntime() *bootstrap.Runtime {
	return rt
}
