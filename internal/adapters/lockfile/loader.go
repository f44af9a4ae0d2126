// Package lockfile reads Cargo.lock files into package records.
package lockfile

import (
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
	"go.trai.ch/zerr"
)

// CargoLock is the on-disk shape of a Cargo.lock file.
type CargoLock struct {
	Version  int            `toml:"version"`
	Packages []CargoPackage `toml:"package"`
}

// CargoPackage is a single [[package]] table. Source and checksum are read but unused.
type CargoPackage struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"version"`
	Source       string   `toml:"source"`
	Checksum     string   `toml:"checksum"`
	Dependencies []string `toml:"dependencies"`
}

// Loader implements ports.LockfileLoader for Cargo.lock files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads and parses the lockfile at path.
func (l *Loader) Load(path string) (*domain.Lockfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileRead.Error()), "path", path)
	}

	lf, err := l.Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return lf, nil
}

// Parse decodes Cargo.lock content.
func (l *Loader) Parse(data []byte) (*domain.Lockfile, error) {
	var raw CargoLock
	if err := toml.Unmarshal(data, &raw); err != nil {
		var wrapped error = zerr.Wrap(err, domain.ErrLockfileParse.Error())
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			wrapped = zerr.With(zerr.With(wrapped, "line", row), "column", col)
		}
		return nil, wrapped
	}

	// First pass: validate entries and collect the locked versions of each name
	versionsByName := make(map[string][]string, len(raw.Packages))
	for i, pkg := range raw.Packages {
		if pkg.Name == "" {
			return nil, zerr.With(domain.ErrPackageMissingName, "index", i)
		}
		if pkg.Version == "" {
			return nil, zerr.With(zerr.With(domain.ErrPackageMissingVersion, "index", i), "package", pkg.Name)
		}
		if !slices.Contains(versionsByName[pkg.Name], pkg.Version) {
			versionsByName[pkg.Name] = append(versionsByName[pkg.Name], pkg.Version)
		}
	}

	// Second pass: normalize dependency entries into graph keys
	records := make([]domain.PackageRecord, 0, len(raw.Packages))
	for _, pkg := range raw.Packages {
		var deps []string
		if len(pkg.Dependencies) > 0 {
			deps = make([]string, 0, len(pkg.Dependencies))
			for _, entry := range pkg.Dependencies {
				deps = append(deps, l.normalize(pkg.Name, entry, versionsByName))
			}
		}
		records = append(records, domain.PackageRecord{
			Name:         pkg.Name,
			Version:      pkg.Version,
			Dependencies: deps,
		})
	}

	return &domain.Lockfile{Version: raw.Version, Packages: records}, nil
}

// normalize turns a Cargo.lock dependency entry into a "name version" key.
//
// Entries come as "name", "name version" or "name version (source)". A bare name is
// resolved only when exactly one version of it is locked; otherwise it is returned as-is.
func (l *Loader) normalize(owner, entry string, versionsByName map[string][]string) string {
	fields := strings.Fields(entry)
	switch len(fields) {
	case 0:
		return entry
	case 1:
		versions := versionsByName[fields[0]]
		if len(versions) == 1 {
			return domain.PackageKey(fields[0], versions[0])
		}
		if len(versions) > 1 && l.logger != nil {
			l.logger.Warn("ambiguous dependency " + fields[0] + " in " + owner + " is ignored")
		}
		return fields[0]
	default:
		return domain.PackageKey(fields[0], fields[1])
	}
}
