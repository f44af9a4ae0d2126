package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/internal/core/domain"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.LogLevel
	}{
		{"debug", domain.LogLevelDebug},
		{"", domain.LogLevelInfo},
		{"INFO", domain.LogLevelInfo},
		{" warn ", domain.LogLevelWarn},
		{"warning", domain.LogLevelWarn},
		{"Error", domain.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := domain.ParseLogLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseLogLevel_Invalid(t *testing.T) {
	_, err := domain.ParseLogLevel("loud")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidSetting.Error())
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "INFO", domain.LogLevelInfo.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "ERROR", domain.LogLevelError.String())
	assert.Equal(t, "WARN", domain.LogLevel(6).String(), "levels between names round down")
}

func TestLogLevel_Text(t *testing.T) {
	text, err := domain.LogLevelWarn.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warn", string(text))

	var level domain.LogLevel
	require.NoError(t, level.UnmarshalText([]byte("debug")))
	assert.Equal(t, domain.LogLevelDebug, level)

	assert.Error(t, level.UnmarshalText([]byte("verbose")))
}
