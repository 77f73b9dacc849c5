package preset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
)

// Format is a preset document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// are TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// IsFile reports whether ref names a preset file rather than a stored preset.
func IsFile(ref string) bool {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return strings.ContainsAny(ref, `/\`)
}

// Decode parses a preset document and checks that it produces a valid
// parameter set. Keys missing from the document keep their [Default] values.
// Malformed or invalid documents fail with INVALID_PRESET.
func Decode(data []byte, f Format) (*Preset, error) {
	p := Default()
	p.Name = ""
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, p)
	default:
		_, err = toml.Decode(string(data), p)
	}
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidPreset, err, "decode %s preset", f)
	}
	if _, err := p.Params(); err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidPreset, err, "preset %q", p.Name)
	}
	return p, nil
}

// Encode serializes p.
func Encode(p *Preset, f Format) ([]byte, error) {
	if f == FormatYAML {
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, tgerrors.Wrap(tgerrors.ErrCodeInternal, err, "encode yaml preset")
		}
		return data, nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInternal, err, "encode toml preset")
	}
	return buf.Bytes(), nil
}

// Load reads a preset file. The format follows the extension.
func Load(path string) (*Preset, error) {
	if err := tgerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, tgerrors.New(tgerrors.ErrCodePresetNotFound, "preset file %s not found", path)
	}
	if err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "read preset")
	}
	p, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// WriteFile saves p to path in the format of its extension.
func WriteFile(path string, p *Preset) error {
	if err := tgerrors.ValidatePath(path); err != nil {
		return err
	}
	data, err := Encode(p, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return tgerrors.Wrap(tgerrors.ErrCodeExternal, err, "write preset")
	}
	return nil
}
