package config

import "context"

// Loader is the interface for a format-specific configuration file loader.
type Loader interface {
	// Load reads the file at path and returns the settings it sets.
	Load(ctx context.Context, path string) (*Layer, error)
}
