// Package config loads the run-wide defaults dgkit falls back to when a CLI
// flag isn't given: batch size, commit interval, channel buffer size, log
// format. Per-invocation parameters (input paths, DSN, entity type, filters)
// are CLI flags, not config-file material, the same split the teacher draws
// between its viper-loaded Config and request-scoped handler arguments.
package config

import (
	"dgkit/internal/logger"

	"github.com/spf13/viper"
)

// Config holds the defaults a run can fall back on.
type Config struct {
	LogFormat           string `mapstructure:"DGKIT_LOG_FORMAT"`
	DefaultBatchSize     int    `mapstructure:"DGKIT_BATCH_SIZE"`
	DefaultCommitInterval int   `mapstructure:"DGKIT_COMMIT_INTERVAL"`
	DefaultChannelSize   int    `mapstructure:"DGKIT_CHANNEL_SIZE"`
}

// Defaults returns the built-in values used when neither a flag nor the
// environment/config file overrides them.
func Defaults() Config {
	return Config{
		LogFormat:             "json",
		DefaultBatchSize:      10000,
		DefaultCommitInterval: 0,
		DefaultChannelSize:    5000,
	}
}

// Load reads DGKIT_* environment variables (with a .env / .env.local
// fallback, mirroring the teacher's config.InitConfig), overlaying Defaults.
func Load() (Config, error) {
	log := logger.New("config").Function("Load")

	cfg := Defaults()
	viper.AutomaticEnv()

	envVars := []string{
		"DGKIT_LOG_FORMAT", "DGKIT_BATCH_SIZE", "DGKIT_COMMIT_INTERVAL", "DGKIT_CHANNEL_SIZE",
	}
	for _, env := range envVars {
		if err := viper.BindEnv(env); err != nil {
			log.Warn("failed to bind environment variable", "env", env, "error", err)
		}
	}

	if !viper.IsSet("DGKIT_BATCH_SIZE") {
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			log.Debug("no .env file found, using built-in defaults", "error", err)
		} else {
			log.Info("loaded .env file")
		}

		viper.SetConfigFile(".env.local")
		if err := viper.MergeInConfig(); err != nil {
			log.Debug("no .env.local overrides found", "error", err)
		} else {
			log.Info("loaded .env.local overrides")
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, log.Err("could not unmarshal config", err)
	}

	if cfg.DefaultBatchSize <= 0 {
		cfg.DefaultBatchSize = Defaults().DefaultBatchSize
	}
	if cfg.DefaultChannelSize <= 0 {
		cfg.DefaultChannelSize = Defaults().DefaultChannelSize
	}

	return cfg, nil
}
