// Package config loads run settings from depclean.yaml, .env files and the environment.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the configuration file looked up in the working directory.
	DefaultFilename = "depclean.yaml"
	// DotEnvFilename is the optional file of KEY=VALUE pairs loaded from the working directory.
	DotEnvFilename = ".env"
)

// Environment variables recognized by the loader.
const (
	EnvConfigPath  = "DEPCLEAN_CONFIG"
	EnvRegistryURL = "DEPCLEAN_REGISTRY_URL"
	EnvTimeout     = "DEPCLEAN_TIMEOUT"
	EnvConcurrency = "DEPCLEAN_CONCURRENCY"
	EnvUnitCost    = "DEPCLEAN_UNIT_COST"
	EnvLogJSON     = "DEPCLEAN_LOG_JSON"
	EnvLogLevel    = "DEPCLEAN_LOG_LEVEL"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	logger    ports.Logger
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader reading the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, lookupEnv: os.LookupEnv}
}

// Load resolves settings for the given working directory.
//
// Precedence, lowest first: defaults, the YAML file, .env, the process environment.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	dotenv, err := godotenv.Read(filepath.Join(cwd, DotEnvFilename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigRead.Error()), "file", DotEnvFilename)
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	path, explicit := lookup(EnvConfigPath)
	if path == "" {
		explicit = false
		path = filepath.Join(cwd, DefaultFilename)
	}

	found, err := decodeFile(path, explicit, &settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if found && l.logger != nil {
		l.logger.Info("using settings from " + path)
	}

	if err := applyEnv(lookup, &settings); err != nil {
		return domain.Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}

	return settings, nil
}

// decodeFile overlays the YAML file at path onto settings and reports whether it existed.
func decodeFile(path string, required bool, settings *domain.Settings) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigRead.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigParse.Error()), "path", path)
	}
	return true, nil
}

func applyEnv(lookup func(string) (string, bool), s *domain.Settings) error {
	if v, ok := lookup(EnvRegistryURL); ok {
		s.RegistryURL = strings.TrimRight(strings.TrimSpace(v), "/")
	}

	if v, ok := lookup(EnvTimeout); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return envError(err, EnvTimeout, v)
		}
		s.Timeout = d
	}

	if v, ok := lookup(EnvConcurrency); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(err, EnvConcurrency, v)
		}
		s.Concurrency = n
	}

	if v, ok := lookup(EnvUnitCost); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(err, EnvUnitCost, v)
		}
		s.UnitCost = n
	}

	if v, ok := lookup(EnvLogJSON); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return envError(err, EnvLogJSON, v)
		}
		s.LogJSON = b
	}

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := domain.ParseLogLevel(v)
		if err != nil {
			return zerr.With(err, "env", EnvLogLevel)
		}
		s.LogLevel = level
	}

	return nil
}

func envError(err error, key, value string) error {
	return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInvalidSetting.Error()), "env", key), "value", value)
}
