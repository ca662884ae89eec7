package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// watchConfig tunes the watch command. All fields are optional; the zero
// value falls back to the persisted settings and the built-in defaults.
type watchConfig struct {
	// IntervalSeconds is the pause between price updates.
	IntervalSeconds int `yaml:"interval_seconds"`
	// Currency overrides the persisted vs_currency for this run only.
	Currency string `yaml:"vs_currency"`
	// APIKey overrides the COINGECKO_API_KEY environment variable.
	APIKey string `yaml:"coingecko_api_key"`
}

func (c watchConfig) interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// loadWatchConfig reads an optional YAML config file. A missing file is not
// an error when the path is the default one.
func loadWatchConfig(path string, explicit bool) (watchConfig, error) {
	var c watchConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return c, nil
}
