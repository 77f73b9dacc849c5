package params

import (
	"math"
	"testing"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
)

func TestSetSimple(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value float64
		want  Range
	}{
		{"tile size collapses", TileSizeX, 2, Range{2, 2}},
		{"gap collapses", GapY, 0.1, Range{0.1, 0.1}},
		{"height anchored at zero", HeightVariation, 0.5, Range{0, 0.5}},
		{"rotation anchored at zero", RotationZ, 5, Range{0, 5}},
		{"zero rotation", RotationX, 0, Range{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			p.SetSimple(tt.field, tt.value)
			if got := p.Range(tt.field); got != tt.want {
				t.Errorf("Range(%v) = %+v, want %+v", tt.field, got, tt.want)
			}
		})
	}
}

func TestSetRange(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  float64
		wantErr bool
	}{
		{"ordered", 1, 3, false},
		{"degenerate", 2, 2, false},
		{"negative ordered", -10, -2, false},
		{"inverted", 5, 2, true},
		{"nan min", math.NaN(), 2, true},
		{"nan max", 2, math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			before := p.Range(TileSizeX)
			err := p.SetRange(TileSizeX, tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetRange(%v, %v) error = %v, wantErr %v", tt.lo, tt.hi, err, tt.wantErr)
			}
			if tt.wantErr {
				if !tgerrors.Is(err, tgerrors.ErrCodeInvalidRange) {
					t.Errorf("error code = %v, want %v", tgerrors.GetCode(err), tgerrors.ErrCodeInvalidRange)
				}
				if got := p.Range(TileSizeX); got != before {
					t.Errorf("range changed on error: %+v, want %+v", got, before)
				}
				return
			}
			if got := p.Range(TileSizeX); got != (Range{tt.lo, tt.hi}) {
				t.Errorf("Range() = %+v, want {%v %v}", got, tt.lo, tt.hi)
			}
		})
	}
}

func TestSetGrid(t *testing.T) {
	tests := []struct {
		name          string
		columns, rows int
		wantErr       bool
	}{
		{"positive", 3, 2, false},
		{"empty", 0, 0, false},
		{"zero rows", 4, 0, false},
		{"negative columns", -1, 2, true},
		{"negative rows", 2, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			err := p.SetGrid(tt.columns, tt.rows)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetGrid() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !tgerrors.Is(err, tgerrors.ErrCodeInvalidDimension) {
					t.Errorf("error code = %v, want %v", tgerrors.GetCode(err), tgerrors.ErrCodeInvalidDimension)
				}
				if p.Columns != 10 || p.Rows != 5 {
					t.Errorf("grid changed on error: %dx%d", p.Columns, p.Rows)
				}
				return
			}
			if p.Columns != tt.columns || p.Rows != tt.rows {
				t.Errorf("grid = %dx%d, want %dx%d", p.Columns, p.Rows, tt.columns, tt.rows)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if !p.ClearBeforeGenerate {
		t.Error("ClearBeforeGenerate should default to true")
	}
	for _, c := range Channels() {
		if p.Keeps(c) {
			t.Errorf("Keeps(%v) = true, want false", c)
		}
	}
	if got := p.Range(RotationZ); got != (Range{-10, 15}) {
		t.Errorf("Range(RotationZ) = %+v, want {-10 15}", got)
	}
}

func TestValidateCatchesHandEditedRanges(t *testing.T) {
	p := Default()
	p.Ranges[GapX] = Range{1, 0}
	if err := p.Validate(); !tgerrors.Is(err, tgerrors.ErrCodeInvalidRange) {
		t.Errorf("Validate() = %v, want INVALID_RANGE", err)
	}

	p = Default()
	p.Rows = -3
	if err := p.Validate(); !tgerrors.Is(err, tgerrors.ErrCodeInvalidDimension) {
		t.Errorf("Validate() = %v, want INVALID_DIMENSION", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := Default()
	c := p.Clone()
	c.SetSimple(TileSizeX, 9)
	c.SetKeep(Height, true)

	if p.Range(TileSizeX) == c.Range(TileSizeX) {
		t.Error("Clone shares ranges with original")
	}
	if p.Keeps(Height) {
		t.Error("Clone shares keep flags with original")
	}
}

func TestChannelSource(t *testing.T) {
	tests := []struct {
		channel Channel
		want    Field
		size    bool
	}{
		{SizeX, TileSizeX, true},
		{SizeY, TileSizeY, true},
		{SizeZ, TileSizeZ, true},
		{Height, HeightVariation, false},
		{RotateX, RotationX, false},
		{RotateY, RotationY, false},
		{RotateZ, RotationZ, false},
	}

	for _, tt := range tests {
		t.Run(tt.channel.String(), func(t *testing.T) {
			if got := tt.channel.Source(); got != tt.want {
				t.Errorf("Source() = %v, want %v", got, tt.want)
			}
			if got := tt.channel.IsSize(); got != tt.size {
				t.Errorf("IsSize() = %v, want %v", got, tt.size)
			}
		})
	}
}

func TestNames(t *testing.T) {
	if got := len(Fields()); got != 9 {
		t.Errorf("len(Fields()) = %d, want 9", got)
	}
	if got := len(Channels()); got != 7 {
		t.Errorf("len(Channels()) = %d, want 7", got)
	}
	if got := HeightVariation.String(); got != "height variation" {
		t.Errorf("HeightVariation.String() = %q", got)
	}
	if got := Field(42).String(); got != "field(42)" {
		t.Errorf("Field(42).String() = %q", got)
	}
	if got := Channel(-1).String(); got != "channel(-1)" {
		t.Errorf("Channel(-1).String() = %q", got)
	}
}
