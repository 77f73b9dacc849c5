package preset

import (
	"os"
	"path/filepath"
	"testing"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

const bricksTOML = `
name = "bricks"

[grid]
columns = 4
rows = 3

[tile_size]
mode = "simple"
value = 1.5

[height]
mode = "simple"
value = 0.25

[keep]
rotate_z = true
`

const bricksYAML = `
name: bricks
grid:
  columns: 4
  rows: 3
tile_size:
  mode: simple
  value: 1.5
height:
  mode: simple
  value: 0.25
keep:
  rotate_z: true
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", bricksTOML, FormatTOML},
		{"yaml", bricksYAML, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if p.Name != "bricks" {
				t.Errorf("Name = %q", p.Name)
			}
			s, err := p.Params()
			if err != nil {
				t.Fatal(err)
			}
			if s.Columns != 4 || s.Rows != 3 {
				t.Errorf("grid = %dx%d, want 4x3", s.Columns, s.Rows)
			}
			if r := s.Range(params.TileSizeY); r != (params.Range{Min: 1.5, Max: 1.5}) {
				t.Errorf("tile size y = %+v", r)
			}
			if r := s.Range(params.HeightVariation); r != (params.Range{Min: 0, Max: 0.25}) {
				t.Errorf("height = %+v", r)
			}
			// untouched groups keep their defaults
			if r := s.Range(params.GapY); r != params.Default().Range(params.GapY) {
				t.Errorf("gap y = %+v", r)
			}
			if !s.Keeps(params.RotateZ) || s.Keeps(params.RotateX) {
				t.Errorf("keep = %v", s.Keep)
			}
			if !s.ClearBeforeGenerate {
				t.Error("clear flag should default to true")
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"malformed toml", "[grid\ncolumns = 1", FormatTOML},
		{"malformed yaml", "grid: [", FormatYAML},
		{"inverted range", "[gaps]\nmode = \"advanced\"\nx = {min = 1.0, max = 0.5}", FormatTOML},
		{"negative grid", "[grid]\ncolumns = -2\nrows = 1", FormatTOML},
		{"unknown mode", "[rotation]\nmode = \"wild\"", FormatTOML},
		{"negative simple height", "height:\n  mode: simple\n  value: -1", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !tgerrors.Is(err, tgerrors.ErrCodeInvalidPreset) {
				t.Errorf("Decode() error = %v, want INVALID_PRESET", err)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	p := Default()
	p.Name = "wide"
	p.Grid.Columns = 20
	p.Keep.SizeX = true

	for _, f := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(p, f)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			got, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if *got != *p {
				t.Errorf("got %+v, want %+v", got, p)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.toml", FormatTOML},
		{"a.yaml", FormatYAML},
		{"dir/a.YML", FormatYAML},
		{"a", FormatTOML},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsFile(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"bricks", false},
		{"bricks.toml", true},
		{"bricks.yaml", true},
		{"./bricks", true},
		{"my-preset_2", false},
	}
	for _, tt := range tests {
		if got := IsFile(tt.ref); got != tt.want {
			t.Errorf("IsFile(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestLoadAndWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "bricks.yaml")
	if err := os.WriteFile(path, []byte(bricksYAML), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	out := filepath.Join(dir, "copy.toml")
	if err := WriteFile(out, p); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	back, err := Load(out)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *back != *p {
		t.Errorf("got %+v, want %+v", back, p)
	}

	unnamed := filepath.Join(dir, "plain.toml")
	if err := os.WriteFile(unnamed, []byte("[grid]\ncolumns = 1\nrows = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if p, err := Load(unnamed); err != nil || p.Name != "plain" {
		t.Errorf("Load(unnamed) = %v, %v; want name plain", p, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !tgerrors.Is(err, tgerrors.ErrCodePresetNotFound) {
		t.Errorf("Load(missing) error = %v, want PRESET_NOT_FOUND", err)
	}
}
