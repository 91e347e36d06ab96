package golang

import (
	"strings"

	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/templates"
)

// Generator produces the per-route template values for the Go SDK
type Generator struct {
	registry *registry.Registry
	plan     *Plan
}

// NewGenerator creates a Go SDK generator. The registry is scanned once up
// front so enum naming does not depend on generation order.
func NewGenerator(reg *registry.Registry) (*Generator, error) {
	plan, err := NewPlan(reg)
	if err != nil {
		return nil, err
	}
	return &Generator{
		registry: reg,
		plan:     plan,
	}, nil
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".go"
}

// Plan returns the registry-wide naming plan
func (g *Generator) Plan() *Plan {
	return g.plan
}

// Generate builds the substitutions for one route
func (g *Generator) Generate(route registry.Route) (templates.Values, error) {
	fields, enums, err := BuildFields(route.Name, g.registry.OptionsFor(route.Name), g.plan)
	if err != nil {
		return templates.Values{}, err
	}

	return templates.Values{
		Proper:  ProperCase(route.Name),
		Lower:   strings.ToLower(route.Name),
		Package: PackageName(route.Name),
		Fields:  fields,
		Enums:   enums,
	}, nil
}
