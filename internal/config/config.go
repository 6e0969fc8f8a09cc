package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"othereditor/internal/adapters/filesystem"
	"othereditor/internal/adapters/settings"
	"othereditor/internal/domain"
)

const DefaultVaultPath = "~/Documents/vault"

// EnvPrefix prefixes every environment variable, e.g. OTHEREDITOR_VAULT
const EnvPrefix = "OTHEREDITOR"

// Keys
const (
	KeyVault        = "vault"
	KeySettingsPath = "settings_path"
	KeyLaunchMode   = "launch_mode"
	KeyWaitDelay    = "wait_delay"
	KeyLogLevel     = "log_level"
	KeyHistory      = "history"
	KeyPlatform     = "platform"
)

// Config is the resolved runtime configuration shared by all binaries
type Config struct {
	Vault        string
	SettingsPath string
	LaunchMode   domain.LaunchMode
	WaitDelay    time.Duration
	LogLevel     string
	History      bool
	Platform     string // empty detects the running platform
}

// VaultPath returns the vault path from OTHEREDITOR_VAULT env var,
// falling back to DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv(EnvPrefix + "_VAULT"); env != "" {
		return env
	}
	return DefaultVaultPath
}

// New creates a viper instance with defaults, environment binding and the
// optional config.yaml. A .env file in the working directory is loaded first.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(KeyVault, DefaultVaultPath)
	v.SetDefault(KeySettingsPath, "")
	v.SetDefault(KeyLaunchMode, string(domain.LaunchModeExec))
	v.SetDefault(KeyWaitDelay, 2*time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHistory, true)
	v.SetDefault(KeyPlatform, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())
	return v
}

// Dir returns the directory holding config.yaml
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "othereditor")
}

// Load reads the config file, if any, and resolves the configuration
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Vault:      filesystem.ExpandHome(strings.TrimSpace(v.GetString(KeyVault))),
		LaunchMode: domain.ParseLaunchMode(v.GetString(KeyLaunchMode)),
		WaitDelay:  v.GetDuration(KeyWaitDelay),
		LogLevel:   v.GetString(KeyLogLevel),
		History:    v.GetBool(KeyHistory),
		Platform:   strings.TrimSpace(v.GetString(KeyPlatform)),
	}
	if cfg.Vault == "" {
		return nil, &domain.ValidationError{Field: KeyVault, Message: "vault is required"}
	}
	// a relative vault is taken relative to where the command was started
	abs, err := filepath.Abs(cfg.Vault)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	cfg.Vault = abs
	if cfg.WaitDelay < 0 {
		return nil, &domain.ValidationError{Field: KeyWaitDelay, Message: "wait_delay must not be negative"}
	}

	cfg.SettingsPath = filesystem.ExpandHome(strings.TrimSpace(v.GetString(KeySettingsPath)))
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = settings.DefaultPath(cfg.Vault)
	}
	return cfg, nil
}
