// Package prefs persists the last rendered surface size and hour between runs.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the default prefs file name inside the config directory.
	FileName = "prefs.yaml"

	// MaxFileBytes bounds parsing to avoid allocation bombs.
	MaxFileBytes = 4096
)

var ErrNotFound = errors.New("prefs: not found")

// Prefs is the persisted record.
type Prefs struct {
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Hour      int       `yaml:"hour"`
	Bucket    string    `yaml:"bucket,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

func (p Prefs) validate() error {
	if p.Width < 0 || p.Height < 0 {
		return fmt.Errorf("prefs: negative size %dx%d", p.Width, p.Height)
	}
	if p.Hour < 0 || p.Hour > 23 {
		return fmt.Errorf("prefs: hour out of range: %d", p.Hour)
	}
	return nil
}

// Parse decodes and validates a prefs document.
func Parse(data []byte) (Prefs, error) {
	if len(data) > MaxFileBytes {
		return Prefs{}, fmt.Errorf("prefs: file too large (%d bytes)", len(data))
	}
	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("prefs: parse: %w", err)
	}
	if err := p.validate(); err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// Format encodes p as YAML.
func Format(p Prefs) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("prefs: encode: %w", err)
	}
	return out, nil
}

// Store loads and saves Prefs.
type Store interface {
	Load() (Prefs, error)
	Save(Prefs) error
}

// DefaultPath returns <user config dir>/bitday/prefs.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: config dir: %w", err)
	}
	return filepath.Join(dir, "bitday", FileName), nil
}

// FileStore keeps Prefs in a YAML file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Prefs{}, ErrNotFound
	}
	if err != nil {
		return Prefs{}, fmt.Errorf("prefs: read %s: %w", s.path, err)
	}
	return Parse(data)
}

// Save writes p atomically: a temp file in the same directory is renamed over the target.
func (s *FileStore) Save(p Prefs) error {
	data, err := Format(p)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return fmt.Errorf("prefs: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("prefs: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("prefs: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("prefs: rename: %w", err)
	}
	return nil
}

// MemoryStore keeps Prefs in memory. Err, if set, is returned by every call.
type MemoryStore struct {
	Err error

	p     Prefs
	ok    bool
	Saves int
}

func (s *MemoryStore) Load() (Prefs, error) {
	if s.Err != nil {
		return Prefs{}, s.Err
	}
	if !s.ok {
		return Prefs{}, ErrNotFound
	}
	return s.p, nil
}

func (s *MemoryStore) Save(p Prefs) error {
	if s.Err != nil {
		return s.Err
	}
	if err := p.validate(); err != nil {
		return err
	}
	s.p = p
	s.ok = true
	s.Saves++
	return nil
}

// Discard is a Store that remembers nothing.
type Discard struct{}

func (Discard) Load() (Prefs, error) { return Prefs{}, ErrNotFound }
func (Discard) Save(Prefs) error     { return nil }
