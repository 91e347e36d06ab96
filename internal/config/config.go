package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the configuration file searched for
const FileName = "sdkgen.json"

// ErrNotFound is returned when no sdkgen.json exists in the directory or
// any parent
var ErrNotFound = errors.New("no " + FileName + " found")

// Config represents the sdkgen.json configuration file
type Config struct {
	Registry   string      `json:"registry"`
	Templates  string      `json:"templates,omitempty"`
	Language   string      `json:"language"`
	SDKRoot    string      `json:"sdk_root"`
	ClientRoot string      `json:"client_root"`
	Format     bool        `json:"format"`
	CreateDirs bool        `json:"create_dirs"`
	Watch      WatchConfig `json:"watch"`
}

// WatchConfig contains file patterns for the watch command
type WatchConfig struct {
	Patterns []string `json:"patterns"`
	Exclude  []string `json:"exclude"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig loads sdkgen.json from the current directory or a parent
// directory. It also returns the directory the file was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Resolve makes every relative path in the configuration relative to dir
func (c *Config) Resolve(dir string) {
	c.Registry = resolve(dir, c.Registry)
	c.Templates = resolve(dir, c.Templates)
	c.SDKRoot = resolve(dir, c.SDKRoot)
	c.ClientRoot = resolve(dir, c.ClientRoot)
}

// Save writes the configuration as indented JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Registry == "" {
		c.Registry = "./registry.yaml"
	}
	if c.Language == "" {
		c.Language = "go"
	}
	if c.SDKRoot == "" {
		c.SDKRoot = "./sdk"
	}
	if c.ClientRoot == "" {
		c.ClientRoot = "./client"
	}
	if len(c.Watch.Patterns) == 0 {
		c.Watch.Patterns = []string{"*.yaml", "*.yml", "*.tmpl"}
	}
	if len(c.Watch.Exclude) == 0 {
		c.Watch.Exclude = []string{".git", "*.new", "*~"}
	}
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// loadConfigFromDir searches for sdkgen.json in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, startDir)
}
