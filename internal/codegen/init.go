package codegen

import (
	"github.com/okra-platform/sdkgen/internal/codegen/golang"
	"github.com/okra-platform/sdkgen/internal/registry"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	goFactory := func(reg *registry.Registry) (Generator, error) {
		return golang.NewGenerator(reg)
	}

	DefaultRegistry.Register("go", goFactory)
	// golang as an alias for go
	DefaultRegistry.Register("golang", goFactory)
}
