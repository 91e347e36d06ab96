package registry

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a registry
type File struct {
	Endpoints []EndpointRecord `yaml:"endpoints"`
	Options   []OptionRecord   `yaml:"options"`
}

// EndpointRecord is one entry of the endpoints list. Relevant defaults to true.
type EndpointRecord struct {
	Route    string `yaml:"route"`
	Relevant *bool  `yaml:"relevant,omitempty"`
}

// OptionRecord is one entry of the options list
type OptionRecord struct {
	Route    string `yaml:"route"`
	LongName string `yaml:"long_name"`
	DataType string `yaml:"data_type"`
	GoType   string `yaml:"go_type"`
	Generate string `yaml:"generate,omitempty"`
}

// Load decodes a YAML registry
func Load(r io.Reader) (*Registry, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return f.Registry()
}

// LoadFile reads and decodes a YAML registry file
func LoadFile(path string) (*Registry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}
	defer fh.Close()

	reg, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reg, nil
}

// Registry converts the file records into a Registry
func (f *File) Registry() (*Registry, error) {
	reg := New()
	for i, ep := range f.Endpoints {
		if ep.Route == "" {
			return nil, fmt.Errorf("endpoint %d: route is required", i)
		}
		relevant := true
		if ep.Relevant != nil {
			relevant = *ep.Relevant
		}
		reg.AddRoute(Route{Name: ep.Route, Relevant: relevant})
	}

	for i, rec := range f.Options {
		kind, err := ParseGenerationKind(rec.Generate)
		if err != nil {
			return nil, fmt.Errorf("option %d (%s.%s): %w", i, rec.Route, rec.LongName, err)
		}
		if rec.LongName == "" {
			return nil, fmt.Errorf("option %d (%s): long_name is required", i, rec.Route)
		}
		reg.AddOption(Option{
			Route:        rec.Route,
			LongName:     rec.LongName,
			DeclaredType: rec.DataType,
			TypeHint:     rec.GoType,
			Kind:         kind,
		})
	}
	return reg, nil
}
