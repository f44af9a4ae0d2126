package config

import "go.trai.ch/depclean/internal/core/ports"

// NewLoaderWithEnv creates a Loader that reads variables from env instead of the process.
func NewLoaderWithEnv(logger ports.Logger, env map[string]string) *Loader {
	return &Loader{
		logger: logger,
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
	}
}
