package scene

import (
	"encoding/json"
	"os"
	"path/filepath"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/session"
)

// SnapshotVersion is the current snapshot format.
const SnapshotVersion = 1

// Snapshot is the serialized form of a scene and its session.
type Snapshot struct {
	Version   int              `json:"version"`
	Objects   []Object         `json:"objects"`
	Selection []session.Handle `json:"selection,omitempty"`
	Tiles     []session.Tile   `json:"tiles,omitempty"`
}

// Snapshot captures the scene together with tiles.
func (m *Memory) Snapshot(tiles []session.Tile) Snapshot {
	sel, _ := m.CurrentSelection()
	return Snapshot{
		Version:   SnapshotVersion,
		Objects:   m.Objects(),
		Selection: sel,
		Tiles:     tiles,
	}
}

// Restore builds a scene from s. Objects whose parent is missing are rejected.
func Restore(s Snapshot) (*Memory, error) {
	if s.Version != SnapshotVersion {
		return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "unsupported snapshot version %d", s.Version)
	}
	m := NewMemory()
	for i := range s.Objects {
		o := s.Objects[i]
		if o.Handle == "" {
			return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "object %d has no handle", i)
		}
		if _, dup := m.objects[o.Handle]; dup {
			return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "duplicate object %q", o.Handle)
		}
		if o.Parent != "" {
			if _, ok := m.objects[o.Parent]; !ok {
				return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "object %q: parent %q not found", o.Handle, o.Parent)
			}
		}
		if o.Attrs == nil {
			o.Attrs = map[string]float64{}
		}
		m.add(o.clone())
	}
	if err := m.Select(s.Selection...); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile loads a snapshot from path. A missing file yields an empty scene
// and no tiles.
func ReadFile(path string) (*Memory, []session.Tile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewMemory(), nil, nil
	}
	if err != nil {
		return nil, nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "read scene")
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidInput, err, "parse scene %s", path)
	}
	m, err := Restore(s)
	if err != nil {
		return nil, nil, err
	}
	return m, s.Tiles, nil
}

// WriteFile saves the scene and tiles to path, creating parent directories.
func WriteFile(path string, m *Memory, tiles []session.Tile) error {
	data, err := json.MarshalIndent(m.Snapshot(tiles), "", "  ")
	if err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeInternal, err, "encode scene")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "create scene directory")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "write scene")
	}
	return nil
}
