package coinledger

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings are the user preferences persisted in settings.json. The file is
// re-read on every access so edits made outside the running process are
// always picked up.
type Settings struct {
	// UseTime toggles showing the current time in listings.
	UseTime bool `json:"use_time"`
	// Currency is the fiat currency code used when fetching prices.
	Currency string `json:"vs_currency"`
	// SameLimitsThreshold is the maximum percentage difference in mean price
	// for two series to share y-axis limits when plotted.
	SameLimitsThreshold float64 `json:"same_limits_threshold"`
}

func defaultSettings() Settings {
	return Settings{UseTime: true, Currency: "usd", SameLimitsThreshold: 1.5}
}

// Settings loads the current user settings from disk.
func (s *Store) Settings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.readFile(settingsFile)
	if err != nil {
		return Settings{}, err
	}
	var v Settings
	if err := json.Unmarshal(data, &v); err != nil {
		return Settings{}, fmt.Errorf("cannot parse %s: %w", settingsFile, err)
	}
	return v, nil
}

// SaveSettings validates and persists the settings.
func (s *Store) SaveSettings(v Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.SameLimitsThreshold <= 0 {
		return fmt.Errorf("%w: same_limits_threshold must be positive", ErrValidation)
	}
	if err := ValidateCurrency(v.Currency); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(settingsFile), data, 0644)
}
