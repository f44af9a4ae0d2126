package ports

import (
	"context"

	"go.trai.ch/depclean/internal/core/domain"
)

// RegistryGateway fetches published version metadata from a package registry.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RegistryGateway interface {
	// Fetch returns the metadata for one exact version of a package.
	//
	// Any returned error means the metadata is unavailable. Callers must treat it as
	// non-fatal and continue without the metadata.
	Fetch(ctx context.Context, name, version string) (*domain.VersionMetadata, error)
}
