package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depclean/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/depclean/internal/adapters/lockfile"           //nolint:depguard // Wired in app layer
	"go.trai.ch/depclean/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/depclean/internal/adapters/registry"           //nolint:depguard // Wired in app layer
	"go.trai.ch/depclean/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/depclean/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/core/ports"
	"go.trai.ch/depclean/internal/engine/scorer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			lockfile.NodeID,
			scorer.NodeID,
			report.NodeID,
			progrock.NodeID,
			logger.NodeID,
			config.SettingsNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	lockfiles, err := graft.Dep[ports.LockfileLoader](ctx)
	if err != nil {
		return nil, err
	}

	engine, err := graft.Dep[*scorer.Engine](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.ReportRenderer](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	a := New(lockfiles, engine, registry.Offline{}, renderer, telemetry, log, settings)
	a.SetJSONLogs(settings.LogJSON)
	a.SetLogLevel(settings.LogLevel)
	return a, nil
}
