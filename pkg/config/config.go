package config

// Package config provides a reusable loader for the registry node's
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/synnergy-registry/registry/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for a registry node: where its
// persistent state lives, how its submission gateway serves and retries,
// and how it logs.
type Config struct {
	Storage struct {
		WALPath          string `mapstructure:"wal_path" json:"wal_path"`
		SnapshotPath     string `mapstructure:"snapshot_path" json:"snapshot_path"`
		SnapshotInterval int    `mapstructure:"snapshot_interval" json:"snapshot_interval"`
	} `mapstructure:"storage" json:"storage"`

	API struct {
		ListenAddr   string `mapstructure:"listen_addr" json:"listen_addr"`
		RetryAttempts int   `mapstructure:"retry_attempts" json:"retry_attempts"`
	} `mapstructure:"api" json:"api"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/registryapi/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // picks up from .env

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the REGISTRY_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("REGISTRY_ENV", ""))
}
