package sdk

import (
	"errors"
	"fmt"

	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/schema"
)

// Check reports every problem that would stop generation: declared types
// that do not parse, and options bound to routes the registry does not
// know. All problems are joined into one error.
func Check(reg *registry.Registry) error {
	var errs []error
	for _, opt := range reg.Options() {
		if !reg.HasRoute(opt.Route) {
			errs = append(errs, fmt.Errorf("option %s.%s: unknown route", opt.Route, opt.LongName))
			continue
		}
		if opt.Kind == registry.Config {
			continue
		}
		if _, err := schema.Parse(opt.DeclaredType); err != nil {
			errs = append(errs, fmt.Errorf("option %s.%s: %w", opt.Route, opt.LongName, err))
		}
	}
	return errors.Join(errs...)
}
