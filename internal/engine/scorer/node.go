package scorer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depclean/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depclean/internal/adapters/registry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
)

// NodeID is the unique identifier for the scorer Graft node.
const NodeID graft.ID = "engine.scorer"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*Engine, error) {
			gateway, err := graft.Dep[ports.RegistryGateway](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			return New(
				gateway,
				WithTimeout(settings.Timeout),
				WithConcurrency(settings.Concurrency),
			), nil
		},
	})
}
