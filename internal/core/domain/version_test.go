package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	v, err := domain.ParseVersion("1.2.3-beta.1+build.5")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major())
	assert.Equal(t, "beta.1", v.Prerelease())

	for _, raw := range []string{"invalid", "1.2", "v1.2.3", ""} {
		_, err := domain.ParseVersion(raw)
		require.Error(t, err, raw)
		assert.ErrorContains(t, err, domain.ErrInvalidVersion.Error())
	}
}

func TestVersionMetadata_AgeInDays(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	meta := domain.VersionMetadata{PublishedAt: now.Add(-(10*24 + 23) * time.Hour)}

	assert.Equal(t, int64(10), meta.AgeInDays(now))
}
