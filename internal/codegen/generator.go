package codegen

import (
	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/templates"
)

// Generator is the interface that all language-specific SDK generators must implement
type Generator interface {
	// Generate builds the template substitutions for one route
	Generate(route registry.Route) (templates.Values, error)

	// Language returns the name of the target language (e.g., "go")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".go")
	FileExtension() string
}

// Factory creates a generator bound to a loaded registry
type Factory func(reg *registry.Registry) (Generator, error)
