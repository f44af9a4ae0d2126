package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// LogLevel is the severity of a log line. Values line up with log/slog.
type LogLevel int

// Log levels accepted by the log_level setting.
const (
	LogLevelDebug LogLevel = -4
	LogLevelInfo  LogLevel = 0
	LogLevelWarn  LogLevel = 4
	LogLevelError LogLevel = 8
)

// ParseLogLevel parses a level name case-insensitively. An empty name is LogLevelInfo.
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	}
	return LogLevelInfo, zerr.With(ErrInvalidSetting, "log_level", name)
}

func (l LogLevel) String() string {
	switch {
	case l >= LogLevelError:
		return "ERROR"
	case l >= LogLevelWarn:
		return "WARN"
	case l >= LogLevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so the level can be written by name in YAML.
func (l *LogLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
