package ports

import "go.trai.ch/parcel/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load searches for parcel.yaml starting at cwd and walking up.
	// If none is found, it returns the default configuration rooted at cwd.
	Load(cwd string) (*domain.Config, error)
}

// DefinitionLoader reads the publish-time bundle definition.
type DefinitionLoader interface {
	// LoadDefinition parses the bundle definition file at path.
	LoadDefinition(path string) (*domain.Definition, error)
}
