package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depclean/internal/adapters/config"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
)

// NodeID is the unique identifier for the registry gateway Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[ports.RegistryGateway]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.RegistryGateway, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewGateway(settings), nil
		},
	})
}
