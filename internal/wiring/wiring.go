// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depclean/internal/adapters/config"
	_ "go.trai.ch/depclean/internal/adapters/lockfile"
	_ "go.trai.ch/depclean/internal/adapters/logger"
	_ "go.trai.ch/depclean/internal/adapters/registry"
	_ "go.trai.ch/depclean/internal/adapters/report"
	_ "go.trai.ch/depclean/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/depclean/internal/app"
	_ "go.trai.ch/depclean/internal/engine/scorer"
)
