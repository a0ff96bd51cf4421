package cmd

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// fileConfig mirrors the TOML config file. All keys are optional; anything
// absent falls back to the matching flag or the built-in default.
type fileConfig struct {
	CashAccount         string `toml:"cash-account"`
	DividendAccount     string `toml:"dividend-account"`
	FeeAccount          string `toml:"fee-account"`
	ContributionAccount string `toml:"contribution-account"`
}

// loadConfig reads the TOML config file. A missing, unreadable, or
// malformed file degrades to an empty config with a warning; configuration
// problems never abort a run.
func loadConfig(path string) fileConfig {
	var cfg fileConfig

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg
		}
		path = filepath.Join(home, ".config", "gnucash-convert.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("config", path).Msg("unable to read config, using defaults")
		}
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		logger.Warn().Err(err).Str("config", path).Msg("malformed config, using defaults")
		return fileConfig{}
	}
	return cfg
}

// pick returns the first non-empty value: flag beats config file. An empty
// result falls through to the library defaults.
func pick(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
