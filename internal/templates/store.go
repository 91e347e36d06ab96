package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed defaults/*.tmpl
var defaultFS embed.FS

// ErrNotFound is returned when a named template does not exist
var ErrNotFound = errors.New("template not found")

// Store returns the raw text of a named template
type Store interface {
	Load(name string) (string, error)
}

// DirStore reads templates from a directory on disk
type DirStore struct {
	Dir string
}

// NewDirStore creates a store rooted at dir
func NewDirStore(dir string) *DirStore {
	return &DirStore{Dir: dir}
}

// Load reads dir/name
func (s *DirStore) Load(name string) (string, error) {
	path := filepath.Join(s.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return string(data), nil
}

// EmbeddedStore serves the templates compiled into the binary
type EmbeddedStore struct{}

// Load returns the embedded template with the given name
func (EmbeddedStore) Load(name string) (string, error) {
	data, err := defaultFS.ReadFile("defaults/" + name)
	if err != nil {
		return "", fmt.Errorf("%w: %s (embedded)", ErrNotFound, name)
	}
	return string(data), nil
}

// Names lists the templates every store must provide
func Names() []string {
	return []string{Minimal, Full}
}

// NewStore returns a DirStore for dir, or the embedded templates when dir
// is empty
func NewStore(dir string) Store {
	if dir == "" {
		return EmbeddedStore{}
	}
	return NewDirStore(dir)
}

// LoadAll loads every template in Names from s, failing on the first
// missing one
func LoadAll(s Store) (map[string]string, error) {
	ret := make(map[string]string, 2)
	for _, name := range Names() {
		text, err := s.Load(name)
		if err != nil {
			return nil, err
		}
		ret[name] = text
	}
	return ret, nil
}
