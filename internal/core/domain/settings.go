package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultRegistryURL is the base URL of the crates.io API.
	DefaultRegistryURL = "https://crates.io"
	// DefaultTimeout bounds a single registry call.
	DefaultTimeout = 10 * time.Second
	// DefaultRetries is the number of extra attempts for a failed registry call.
	DefaultRetries = 2
	// DefaultBreakerThreshold is the number of consecutive failures that opens a host's circuit.
	DefaultBreakerThreshold = 5
	// DefaultConcurrency limits in-flight registry calls.
	DefaultConcurrency = 8
	// DefaultUserAgent identifies the tool to the registry.
	DefaultUserAgent = "depclean (https://go.trai.ch/depclean)"
)

// Settings holds the tunables for an analysis run.
type Settings struct {
	RegistryURL      string        `yaml:"registry_url"`
	Timeout          time.Duration `yaml:"timeout"`
	Retries          int           `yaml:"retries"`
	BreakerThreshold int           `yaml:"breaker_threshold"`
	Concurrency      int           `yaml:"concurrency"`
	UnitCost         int           `yaml:"unit_cost"`
	UserAgent        string        `yaml:"user_agent"`
	LogJSON          bool          `yaml:"log_json"`
	LogLevel         LogLevel      `yaml:"log_level"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		RegistryURL:      DefaultRegistryURL,
		Timeout:          DefaultTimeout,
		Retries:          DefaultRetries,
		BreakerThreshold: DefaultBreakerThreshold,
		Concurrency:      DefaultConcurrency,
		UnitCost:         DefaultUnitCost,
		UserAgent:        DefaultUserAgent,
		LogLevel:         LogLevelInfo,
	}
}

// Validate checks that every value is usable.
func (s Settings) Validate() error {
	switch {
	case s.RegistryURL == "":
		return zerr.With(ErrInvalidSetting, "registry_url", s.RegistryURL)
	case s.Timeout <= 0:
		return zerr.With(ErrInvalidSetting, "timeout", s.Timeout.String())
	case s.Retries < 0:
		return zerr.With(ErrInvalidSetting, "retries", s.Retries)
	case s.BreakerThreshold < 1:
		return zerr.With(ErrInvalidSetting, "breaker_threshold", s.BreakerThreshold)
	case s.Concurrency < 1:
		return zerr.With(ErrInvalidSetting, "concurrency", s.Concurrency)
	case s.UnitCost < 0:
		return zerr.With(ErrInvalidSetting, "unit_cost", s.UnitCost)
	}
	return nil
}
