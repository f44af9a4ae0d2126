package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/internal/adapters/lockfile"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const serdeLock = `
version = 3

[[package]]
name = "serde"
version = "1.0.193"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "25dd9975e68d0cb5aa1120c288333fc98731bd1dd12f561e468ea4728c042b89"

[[package]]
name = "serde"
version = "1.0.190"
source = "registry+https://github.com/rust-lang/crates.io-index"

[[package]]
name = "serde_json"
version = "1.0.108"
dependencies = [
 "serde 1.0.193",
]
`

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cargo.lock")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	loader := lockfile.NewLoader(nil)

	lf, err := loader.Load(writeLockfile(t, serdeLock))
	require.NoError(t, err)

	assert.Equal(t, 3, lf.Version)
	assert.Equal(t, []domain.PackageRecord{
		{Name: "serde", Version: "1.0.193"},
		{Name: "serde", Version: "1.0.190"},
		{Name: "serde_json", Version: "1.0.108", Dependencies: []string{"serde 1.0.193"}},
	}, lf.Packages)
}

func TestParse_NormalizesDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	content := `
[[package]]
name = "app"
version = "0.1.0"
dependencies = [
 "itoa",
 "syn",
 "syn 2.0.39 (registry+https://github.com/rust-lang/crates.io-index)",
 "missing",
]

[[package]]
name = "itoa"
version = "1.0.9"

[[package]]
name = "syn"
version = "1.0.109"

[[package]]
name = "syn"
version = "2.0.39"
`
	lf, err := lockfile.NewLoader(log).Parse([]byte(content))
	require.NoError(t, err)

	require.Len(t, lf.Packages, 4)
	assert.Equal(t, []string{"itoa 1.0.9", "syn", "syn 2.0.39", "missing"}, lf.Packages[0].Dependencies)
	assert.Equal(t, 0, lf.Version)
}

func TestParse_Empty(t *testing.T) {
	lf, err := lockfile.NewLoader(nil).Parse([]byte("version = 3\n"))
	require.NoError(t, err)
	assert.Empty(t, lf.Packages)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectedErr error
		metaKey     string
	}{
		{
			name:        "malformed toml",
			content:     "[[package]\nname = ",
			expectedErr: domain.ErrLockfileParse,
			metaKey:     "line",
		},
		{
			name:        "wrong shape",
			content:     "package = \"serde\"\n",
			expectedErr: domain.ErrLockfileParse,
		},
		{
			name:        "missing name",
			content:     "[[package]]\nversion = \"1.0.0\"\n",
			expectedErr: domain.ErrPackageMissingName,
			metaKey:     "index",
		},
		{
			name:        "missing version",
			content:     "[[package]]\nname = \"serde\"\n",
			expectedErr: domain.ErrPackageMissingVersion,
			metaKey:     "package",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := lockfile.NewLoader(nil).Load(writeLockfile(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, lf)
			assert.ErrorContains(t, err, tt.expectedErr.Error())

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			meta := zErr.Metadata()
			assert.Contains(t, meta, "path")
			if tt.metaKey != "" {
				assert.Contains(t, meta, tt.metaKey)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cargo.lock")

	_, err := lockfile.NewLoader(nil).Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLockfileRead.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, path, zErr.Metadata()["path"])
}
