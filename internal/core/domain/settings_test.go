package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/internal/core/domain"
)

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, domain.DefaultSettings().Validate())

	single := domain.DefaultSettings()
	single.Retries = 0
	require.NoError(t, single.Validate())

	tests := []struct {
		name   string
		mutate func(*domain.Settings)
	}{
		{"empty registry", func(s *domain.Settings) { s.RegistryURL = "" }},
		{"zero timeout", func(s *domain.Settings) { s.Timeout = 0 }},
		{"negative retries", func(s *domain.Settings) { s.Retries = -1 }},
		{"zero breaker threshold", func(s *domain.Settings) { s.BreakerThreshold = 0 }},
		{"zero concurrency", func(s *domain.Settings) { s.Concurrency = 0 }},
		{"negative unit cost", func(s *domain.Settings) { s.UnitCost = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrInvalidSetting.Error())
		})
	}
}
