package codegen

import (
	"fmt"
	"sort"

	"github.com/okra-platform/sdkgen/internal/registry"
)

// Registry manages available SDK generators by language
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty generator registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a generator factory for a language
func (r *Registry) Register(language string, factory Factory) {
	r.factories[language] = factory
}

// Get creates the generator for language over reg
func (r *Registry) Get(language string, reg *registry.Registry) (Generator, error) {
	factory, exists := r.factories[language]
	if !exists {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}

	gen, err := factory(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", language, err)
	}
	return gen, nil
}

// Languages returns the supported languages, sorted
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.factories))
	for lang := range r.factories {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
