package preset

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/observability"
)

// Store keeps named presets.
type Store interface {
	// Get returns the named preset. Missing presets fail with PRESET_NOT_FOUND.
	Get(ctx context.Context, name string) (*Preset, error)
	// Put stores p under name, replacing any previous preset.
	Put(ctx context.Context, name string, p *Preset) error
	// Delete removes the named preset. Deleting a missing preset is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the stored preset names in sorted order.
	List(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close() error
}

// DefaultDir returns the preset directory: $XDG_CONFIG_HOME/tilegen/presets,
// or ~/.config/tilegen/presets.
func DefaultDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tilegen", "presets"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "get home dir")
	}
	return filepath.Join(home, ".config", "tilegen", "presets"), nil
}

// FileStore keeps one TOML file per preset.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store in baseDir, or in [DefaultDir] when
// baseDir is empty. The directory is created if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "create preset dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) presetPath(name string) string {
	return filepath.Join(s.baseDir, name+".toml")
}

func (s *FileStore) Get(ctx context.Context, name string) (*Preset, error) {
	if err := tgerrors.ValidatePresetName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.presetPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			observability.Preset().OnPresetLoad(ctx, "file", name, false)
			return nil, tgerrors.New(tgerrors.ErrCodePresetNotFound, "preset %q not found", name)
		}
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "read preset file")
	}
	observability.Preset().OnPresetLoad(ctx, "file", name, true)

	p, err := Decode(data, FormatTOML)
	if err != nil {
		return nil, err
	}
	p.Name = name
	return p, nil
}

func (s *FileStore) Put(ctx context.Context, name string, p *Preset) error {
	if err := tgerrors.ValidatePresetName(name); err != nil {
		return err
	}
	if _, err := p.Params(); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeInvalidPreset, err, "preset %q", name)
	}

	stored := *p
	stored.Name = name
	data, err := Encode(&stored, FormatTOML)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.presetPath(name), data, 0644); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "write preset file")
	}
	observability.Preset().OnPresetSave(ctx, "file", name, len(data))
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := tgerrors.ValidatePresetName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.presetPath(name)); err != nil && !os.IsNotExist(err) {
		return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "remove preset file")
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "read preset dir")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for preset files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

// Resolve finds a preset by reference. An empty ref yields [Default]; a ref
// that looks like a file path is loaded with [Load]; anything else is looked
// up in store.
func Resolve(ctx context.Context, store Store, ref string) (*Preset, error) {
	switch {
	case ref == "":
		return Default(), nil
	case IsFile(ref):
		return Load(ref)
	case store == nil:
		return nil, tgerrors.New(tgerrors.ErrCodePresetNotFound, "preset %q not found", ref)
	default:
		return store.Get(ctx, ref)
	}
}
