package domain

import (
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// VersionMetadata is what a registry reports about one published version.
// It is fetched per scoring call and never cached.
type VersionMetadata struct {
	Version       *semver.Version
	PublishedAt   time.Time
	DownloadCount uint64
	IsYanked      bool
}

// ParseVersion parses a strict major.minor.patch[-pre][+build] version.
func ParseVersion(raw string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", raw)
	}
	return v, nil
}

// AgeInDays returns the whole number of days between publication and now, truncated toward zero.
func (m VersionMetadata) AgeInDays(now time.Time) int64 {
	return int64(now.Sub(m.PublishedAt) / (24 * time.Hour))
}
