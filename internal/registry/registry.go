// Package registry holds the endpoint and option records that drive SDK
// generation. Insertion order is preserved everywhere: it decides output
// ordering and enum disambiguation.
package registry

import (
	"fmt"
	"strings"
)

// GenerationKind says whether an option ends up in generated SDK code
type GenerationKind int

const (
	// Code options are emitted as SDK fields
	Code GenerationKind = iota
	// Config options are handled by configuration only and never emitted
	Config
)

func (k GenerationKind) String() string {
	if k == Config {
		return "config"
	}
	return "code"
}

// ParseGenerationKind converts the textual form used in registry files.
// An empty string means Code.
func ParseGenerationKind(s string) (GenerationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "code":
		return Code, nil
	case "config":
		return Config, nil
	default:
		return Code, fmt.Errorf("unknown generation kind %q (want code or config)", s)
	}
}

// Route is a named API command
type Route struct {
	Name     string
	Relevant bool
}

// Option is a declared field belonging to one route
type Option struct {
	Route        string
	LongName     string
	DeclaredType string
	TypeHint     string
	Kind         GenerationKind

	// Seq is the option's position in the registry, assigned on Add
	Seq int
}

// Registry is an ordered collection of routes and their options
type Registry struct {
	routes  []Route
	options []Option
	known   map[string]bool
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		known: make(map[string]bool),
	}
}

// AddRoute appends a route
func (r *Registry) AddRoute(route Route) {
	r.routes = append(r.routes, route)
	r.known[route.Name] = true
}

// AddOption appends an option and returns it with its sequence number set
func (r *Registry) AddOption(opt Option) Option {
	opt.Seq = len(r.options)
	r.options = append(r.options, opt)
	return opt
}

// Routes returns all routes in registry order
func (r *Registry) Routes() []Route {
	return r.routes
}

// Options returns all options in registry order
func (r *Registry) Options() []Option {
	return r.options
}

// HasRoute reports whether a route with the given name was registered
func (r *Registry) HasRoute(name string) bool {
	return r.known[name]
}

// RelevantRoutes returns the routes that produce SDK files
func (r *Registry) RelevantRoutes() []Route {
	ret := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		if route.Relevant {
			ret = append(ret, route)
		}
	}
	return ret
}

// OptionsFor returns the options that generate code for a route, in
// registry order
func (r *Registry) OptionsFor(route string) []Option {
	var ret []Option
	for _, opt := range r.options {
		if opt.Route == route && opt.Kind != Config {
			ret = append(ret, opt)
		}
	}
	return ret
}
