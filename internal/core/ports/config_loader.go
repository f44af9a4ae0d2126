package ports

import "go.trai.ch/depclean/internal/core/domain"

// ConfigLoader defines the interface for loading run settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration visible from the given working directory.
	// Missing configuration is not an error; defaults are returned instead.
	Load(cwd string) (domain.Settings, error)
}
