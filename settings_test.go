package coinledger

import (
	"errors"
	"testing"
)

func TestSettings_Defaults(t *testing.T) {
	s := newTestStore(t)

	settings, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}
	if !settings.UseTime || settings.Currency != "usd" || settings.SameLimitsThreshold != 1.5 {
		t.Errorf("default settings = %+v", settings)
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := Settings{UseTime: false, Currency: "eur", SameLimitsThreshold: 2.5}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings() failed: %v", err)
	}
	got, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestSaveSettings_Validation(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveSettings(Settings{Currency: "usd", SameLimitsThreshold: 0})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("SaveSettings() with zero threshold = %v, want ErrValidation", err)
	}
	err = s.SaveSettings(Settings{Currency: "notacurrency", SameLimitsThreshold: 1})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("SaveSettings() with bad currency = %v, want ErrValidation", err)
	}
}

func TestSettings_ExternalEditsPickedUp(t *testing.T) {
	s := newTestStore(t)

	// Settings are re-read on every access, so an edit made outside the
	// process is visible immediately.
	writeDataFile(t, s, "settings.json", `{"use_time": false, "vs_currency": "gbp", "same_limits_threshold": 3}`)
	settings, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings() failed: %v", err)
	}
	if settings.UseTime || settings.Currency != "gbp" || settings.SameLimitsThreshold != 3 {
		t.Errorf("Settings() = %+v, want the externally edited values", settings)
	}
}
