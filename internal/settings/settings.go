// Package settings persists small key-value settings (the plex.tv token) in a
// TOML file grouped by section. Settings are stored in
// ~/.config/maple/settings.toml unless another path is given.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Store reads and writes string values addressed by section and key.
type Store interface {
	Get(section, key string) (string, bool, error)
	Set(section, key, value string) error
}

var (
	// ErrNoValidHome is returned when no home directory can be determined.
	ErrNoValidHome = errors.New("no valid home location could be determined")
	// ErrLoad is returned when the settings file cannot be read or parsed.
	ErrLoad = errors.New("could not load settings file")
	// ErrWrite is returned when the settings file cannot be written.
	ErrWrite = errors.New("could not write settings file")
)

const defaultSettingsPath = "~/.config/maple/settings.toml"

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultSettingsPath
}

// FileStore is a TOML-backed Store. Every Set rewrites the whole file while
// keeping values it does not touch.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = (*FileStore)(nil)

// Open resolves path (empty uses the default) and makes sure the settings
// file and its directory exist.
func Open(path string) (*FileStore, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create settings dir: %w", ErrWrite, err)
	}
	file, err := os.OpenFile(resolved, os.O_CREATE|os.O_RDONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrWrite, resolved, err)
	}
	_ = file.Close()
	return &FileStore{path: resolved}, nil
}

// Path returns the resolved settings file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under section.key. The boolean is false when
// the key is absent or empty.
func (s *FileStore) Get(section, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, _ := sectionOf(doc, section)[key].(string)
	return value, value != "", nil
}

// Set stores value under section.key. An empty value removes the key.
func (s *FileStore) Set(section, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	table := sectionOf(doc, section)
	if value == "" {
		if table == nil {
			return nil
		}
		delete(table, key)
		if len(table) == 0 {
			delete(doc, section)
		}
	} else {
		if table == nil {
			table = map[string]any{}
			doc[section] = table
		}
		table[key] = value
	}

	bytes, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrWrite, err)
	}
	if err := os.WriteFile(s.path, bytes, 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// load decodes the whole file. Non-string values are kept as decoded so Set
// writes them back unchanged.
func (s *FileStore) load() (map[string]any, error) {
	doc := map[string]any{}
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if err := toml.Unmarshal(bytes, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrLoad, s.path, err)
	}
	return doc, nil
}

// sectionOf returns the table stored under section, or nil when the section
// is absent or is not a table.
func sectionOf(doc map[string]any, section string) map[string]any {
	table, _ := doc[section].(map[string]any)
	return table
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSettingsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return "", ErrNoValidHome
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
