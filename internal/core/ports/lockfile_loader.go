// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/depclean/internal/core/domain"

// LockfileLoader defines the interface for reading a resolved lockfile into package records.
//
//go:generate mockgen -source=lockfile_loader.go -destination=mocks/mock_lockfile_loader.go -package=mocks
type LockfileLoader interface {
	// Load parses the lockfile at path.
	//
	// Dependency entries in the returned records are normalized to "name version" keys.
	// A missing file, malformed content, or a package without a name or version is an error.
	Load(path string) (*domain.Lockfile, error)
}
