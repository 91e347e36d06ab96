// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/sdkgen/internal/codegen"
	"github.com/okra-platform/sdkgen/internal/config"
	"github.com/okra-platform/sdkgen/internal/emit"
	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/sdk"
	"github.com/okra-platform/sdkgen/internal/templates"
)

// Flags hold command line values. Non-empty values override sdkgen.json.
type Flags struct {
	LogLevel   string
	ConfigPath string
	Registry   string
	Templates  string
	Language   string
	SDKRoot    string
	ClientRoot string
	Format     bool
	CreateDirs bool
}

// ConfigLoader finds and loads the project configuration
type ConfigLoader interface {
	// Load returns the configuration and the directory its relative paths
	// are resolved against
	Load(path string) (*config.Config, string, error)
}

type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			return nil, "", err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
		}
		return cfg, filepath.Dir(abs), nil
	}

	cfg, root, err := config.LoadConfig()
	if errors.Is(err, config.ErrNotFound) {
		// flags alone are enough to run
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", wdErr)
		}
		return config.Default(), wd, nil
	}
	return cfg, root, err
}

// Controller runs the CLI commands
type Controller struct {
	Flags  *Flags
	Logger zerolog.Logger
	Loader ConfigLoader
}

// NewController creates a controller with the default configuration loader
func NewController(flags *Flags, logger zerolog.Logger) *Controller {
	return &Controller{
		Flags:  flags,
		Logger: logger,
		Loader: defaultConfigLoader{},
	}
}

// settings loads the configuration, resolves its paths and applies flag
// overrides
func (c *Controller) settings() (*config.Config, error) {
	loader := c.Loader
	if loader == nil {
		loader = defaultConfigLoader{}
	}
	flags := c.Flags
	if flags == nil {
		flags = &Flags{}
	}

	cfg, root, err := loader.Load(flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Resolve(root)

	if flags.Registry != "" {
		cfg.Registry = flags.Registry
	}
	if flags.Templates != "" {
		cfg.Templates = flags.Templates
	}
	if flags.Language != "" {
		cfg.Language = flags.Language
	}
	if flags.SDKRoot != "" {
		cfg.SDKRoot = flags.SDKRoot
	}
	if flags.ClientRoot != "" {
		cfg.ClientRoot = flags.ClientRoot
	}
	cfg.Format = cfg.Format || flags.Format
	cfg.CreateDirs = cfg.CreateDirs || flags.CreateDirs

	return cfg, nil
}

// newRunner loads the registry named by cfg and wires a runner for it
func (c *Controller) newRunner(cfg *config.Config) (*sdk.Runner, error) {
	reg, err := registry.LoadFile(cfg.Registry)
	if err != nil {
		return nil, err
	}

	gen, err := codegen.DefaultRegistry.Get(cfg.Language, reg)
	if err != nil {
		return nil, err
	}

	opts := sdk.Options{
		SDKRoot:    cfg.SDKRoot,
		ClientRoot: cfg.ClientRoot,
		Emit: emit.Options{
			Format:     cfg.Format,
			CreateDirs: cfg.CreateDirs,
		},
	}
	return sdk.NewRunner(reg, gen, templates.NewStore(cfg.Templates), opts, c.Logger), nil
}

// Generate runs one generation pass
func (c *Controller) Generate(ctx context.Context) error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}
	_, err = c.generate(ctx, cfg)
	return err
}

func (c *Controller) generate(ctx context.Context, cfg *config.Config) (sdk.Summary, error) {
	runner, err := c.newRunner(cfg)
	if err != nil {
		return sdk.Summary{}, err
	}
	return runner.Run(ctx)
}

// Check validates the registry without writing anything
func (c *Controller) Check(ctx context.Context) error {
	cfg, err := c.settings()
	if err != nil {
		return err
	}

	reg, err := registry.LoadFile(cfg.Registry)
	if err != nil {
		return err
	}
	if err := sdk.Check(reg); err != nil {
		return fmt.Errorf("registry %s is invalid:\n%w", cfg.Registry, err)
	}

	c.Logger.Info().
		Str("registry", cfg.Registry).
		Int("routes", len(reg.Routes())).
		Int("options", len(reg.Options())).
		Msg("registry ok")
	return nil
}
