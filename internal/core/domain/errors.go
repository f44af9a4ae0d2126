package domain

import "go.trai.ch/zerr"

var (
	// ErrLockfileRead is returned when the lockfile cannot be read from disk.
	ErrLockfileRead = zerr.New("failed to read lockfile")

	// ErrLockfileParse is returned when the lockfile is not valid TOML or has an unexpected shape.
	ErrLockfileParse = zerr.New("failed to parse lockfile")

	// ErrPackageMissingName is returned when a lockfile package entry has no name.
	ErrPackageMissingName = zerr.New("package entry is missing a name")

	// ErrPackageMissingVersion is returned when a lockfile package entry has no version.
	ErrPackageMissingVersion = zerr.New("package entry is missing a version")
)

var (
	// ErrRegistryRequest is returned when the registry request cannot be built or sent.
	ErrRegistryRequest = zerr.New("registry request failed")

	// ErrRegistryStatus is returned when the registry answers with a non-200 status.
	ErrRegistryStatus = zerr.New("registry returned unexpected status")

	// ErrRegistryDecode is returned when the registry response body is not the expected JSON.
	ErrRegistryDecode = zerr.New("failed to decode registry response")

	// ErrRegistryUnavailable is returned when registry lookups are disabled or the circuit is open.
	ErrRegistryUnavailable = zerr.New("registry unavailable")

	// ErrOffline is the cause of ErrRegistryUnavailable when lookups were turned off on purpose.
	ErrOffline = zerr.New("registry lookups disabled")

	// ErrVersionNotFound is returned when the requested version is absent from the registry response.
	ErrVersionNotFound = zerr.New("version not found in registry")

	// ErrInvalidVersion is returned when a version string is not a strict semantic version.
	ErrInvalidVersion = zerr.New("invalid semantic version")

	// ErrInvalidTimestamp is returned when a publication timestamp is not RFC3339.
	ErrInvalidTimestamp = zerr.New("invalid publication timestamp")
)

var (
	// ErrConfigRead is returned when the configuration file exists but cannot be read.
	ErrConfigRead = zerr.New("failed to read config file")

	// ErrConfigParse is returned when the configuration file is not valid YAML.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrInvalidSetting is returned when a configuration value is out of range.
	ErrInvalidSetting = zerr.New("invalid setting")

	// ErrUnknownFormat is returned when an unsupported report format is requested.
	ErrUnknownFormat = zerr.New("unknown report format")

	// ErrRenderFailed is returned when the report cannot be written.
	ErrRenderFailed = zerr.New("failed to render report")
)
