package registry

import (
	"context"

	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/zerr"
)

// Offline is a gateway that never reaches the network. Every lookup reports the registry as unavailable,
// so scoring falls back to the intrinsic score.
type Offline struct{}

// Fetch always returns ErrRegistryUnavailable caused by domain.ErrOffline.
func (Offline) Fetch(_ context.Context, name, version string) (*domain.VersionMetadata, error) {
	err := zerr.With(zerr.Wrap(domain.ErrOffline, domain.ErrRegistryUnavailable.Error()), "reason", "offline mode")
	err = zerr.With(err, "crate", name)
	return nil, zerr.With(err, "version", version)
}
