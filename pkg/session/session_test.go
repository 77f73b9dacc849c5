package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
)

// recordingScene is a SceneAPI that records every call.
type recordingScene struct {
	next    int
	live    map[Handle]bool
	targets map[Handle]Handle
	calls   []string
	writes  []write

	failCreateAt int // 1-based create call that fails; 0 disables
	failMove     bool
	failDelete   Handle
	failWrite    map[Handle]bool
}

type write struct {
	handle  Handle
	channel params.Channel
	value   float64
}

var errHost = errors.New("host error")

func newRecordingScene() *recordingScene {
	return &recordingScene{
		live:      map[Handle]bool{},
		targets:   map[Handle]Handle{},
		failWrite: map[Handle]bool{},
	}
}

func (s *recordingScene) CreateBox(size layout.Vec3) (Handle, error) {
	s.next++
	if s.failCreateAt == s.next {
		return "", errHost
	}
	h := Handle(fmt.Sprintf("tile%d", s.next))
	s.live[h] = true
	s.targets[h] = h + "Shape"
	s.calls = append(s.calls, "create "+string(h))
	return h, nil
}

func (s *recordingScene) Move(h Handle, pos layout.Vec3) error {
	if s.failMove {
		return errHost
	}
	s.calls = append(s.calls, "move "+string(h))
	return nil
}

func (s *recordingScene) Rotate(h Handle, rot layout.Vec3) error {
	s.calls = append(s.calls, "rotate "+string(h))
	return nil
}

func (s *recordingScene) Delete(h Handle) error {
	if h == s.failDelete {
		return errHost
	}
	delete(s.live, h)
	s.calls = append(s.calls, "delete "+string(h))
	return nil
}

func (s *recordingScene) Exists(h Handle) bool { return s.live[h] }

func (s *recordingScene) SetAttribute(h Handle, c params.Channel, v float64) error {
	if s.failWrite[h] {
		return errHost
	}
	s.writes = append(s.writes, write{h, c, v})
	return nil
}

func (s *recordingScene) ResolveSizeTarget(h Handle) (Handle, bool) {
	t, ok := s.targets[h]
	return t, ok
}

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func smallGrid(columns, rows int) *params.Set {
	p := params.Default()
	p.Columns, p.Rows = columns, rows
	return p
}

func TestGenerateCreatesInLayoutOrder(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)

	n, err := s.Generate(context.Background(), smallGrid(2, 2), layout.NewSeeded(1))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if n != 4 {
		t.Errorf("Generate() = %d, want 4", n)
	}

	want := []string{
		"create tile1", "move tile1", "rotate tile1",
		"create tile2", "move tile2", "rotate tile2",
		"create tile3", "move tile3", "rotate tile3",
		"create tile4", "move tile4", "rotate tile4",
	}
	if strings.Join(scene.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", scene.calls, want)
	}

	tiles := s.Tiles()
	if len(tiles) != 4 {
		t.Fatalf("Tiles() len = %d, want 4", len(tiles))
	}
	cells := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for k, tile := range tiles {
		if got := [2]int{tile.Placement.Column, tile.Placement.Row}; got != cells[k] {
			t.Errorf("tile %d cell = %v, want %v", k, got, cells[k])
		}
	}
}

func TestGenerateClearsPreviousTiles(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	ctx := context.Background()
	p := smallGrid(2, 1)

	if _, err := s.Generate(ctx, p, layout.NewSeeded(1)); err != nil {
		t.Fatal(err)
	}
	// simulate the user deleting one tile by hand
	delete(scene.live, "tile1")
	scene.calls = nil

	if _, err := s.Generate(ctx, p, layout.NewSeeded(2)); err != nil {
		t.Fatal(err)
	}

	if scene.calls[0] != "delete tile2" {
		t.Errorf("first call = %q, want delete tile2", scene.calls[0])
	}
	for _, c := range scene.calls {
		if c == "delete tile1" {
			t.Error("orphaned tile1 was deleted twice")
		}
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestGenerateKeepsPreviousTilesWithoutClear(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	ctx := context.Background()
	p := smallGrid(2, 1)
	p.ClearBeforeGenerate = false

	for range 2 {
		if _, err := s.Generate(ctx, p, layout.NewSeeded(1)); err != nil {
			t.Fatal(err)
		}
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if len(scene.live) != 4 {
		t.Errorf("live objects = %d, want 4", len(scene.live))
	}
}

func TestGenerateCreateFailureKeepsCreatedTiles(t *testing.T) {
	scene := newRecordingScene()
	scene.failCreateAt = 3
	s := New(scene)

	n, err := s.Generate(context.Background(), smallGrid(2, 2), layout.NewSeeded(1))
	if !tgerrors.Is(err, tgerrors.ErrCodeExternal) {
		t.Fatalf("Generate() error = %v, want EXTERNAL", err)
	}
	if !errors.Is(err, errHost) {
		t.Errorf("Generate() error does not wrap host cause: %v", err)
	}
	if n != 2 || s.Len() != 2 {
		t.Errorf("created = %d, Len() = %d, want 2 and 2", n, s.Len())
	}

	removed, err := s.Clear(context.Background())
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if removed != 2 || s.Len() != 0 {
		t.Errorf("Clear() = %d, Len() = %d, want 2 and 0", removed, s.Len())
	}
}

func TestGenerateMoveFailureTracksHandle(t *testing.T) {
	scene := newRecordingScene()
	scene.failMove = true
	s := New(scene)

	_, err := s.Generate(context.Background(), smallGrid(1, 1), layout.NewSeeded(1))
	if !tgerrors.Is(err, tgerrors.ErrCodeExternal) {
		t.Fatalf("Generate() error = %v, want EXTERNAL", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestGenerateInvalidGridTouchesNothing(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene, WithTiles([]Tile{{Handle: "old"}}))
	scene.live["old"] = true

	p := smallGrid(-1, 2)
	_, err := s.Generate(context.Background(), p, layout.NewSeeded(1))
	if !tgerrors.Is(err, tgerrors.ErrCodeInvalidDimension) {
		t.Fatalf("Generate() error = %v, want INVALID_DIMENSION", err)
	}
	if len(scene.calls) != 0 {
		t.Errorf("scene calls = %v, want none", scene.calls)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestClearDeleteFailureKeepsRemaining(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	ctx := context.Background()
	if _, err := s.Generate(ctx, smallGrid(3, 1), layout.NewSeeded(1)); err != nil {
		t.Fatal(err)
	}
	scene.failDelete = "tile2"

	removed, err := s.Clear(ctx)
	if !tgerrors.Is(err, tgerrors.ErrCodeExternal) {
		t.Fatalf("Clear() error = %v, want EXTERNAL", err)
	}
	if removed != 1 {
		t.Errorf("Clear() = %d, want 1", removed)
	}
	tiles := s.Tiles()
	if len(tiles) != 2 || tiles[0].Handle != "tile2" || tiles[1].Handle != "tile3" {
		t.Errorf("remaining tiles = %v", tiles)
	}
}

func TestRegenerateAllKept(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	p := params.Default()
	for _, c := range params.Channels() {
		p.SetKeep(c, true)
	}
	scene.targets["a"] = "aShape"
	scene.targets["b"] = "bShape"

	report, err := s.Regenerate(context.Background(), p, layout.NewSeeded(1), []Handle{"a", "b"})
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}
	if len(scene.writes) != 0 {
		t.Errorf("writes = %v, want none", scene.writes)
	}
	if report.Updated != 2 || report.Writes != 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestRegenerateWritesEveryChannel(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	scene.targets["a"] = "aShape"
	scene.targets["b"] = "bShape"

	p := params.Default()
	p.Ranges[params.RotationX] = params.Range{Min: 4, Max: 4}
	p.Ranges[params.RotationY] = params.Range{Min: -3, Max: -3}
	p.Ranges[params.RotationZ] = params.Range{Min: 7, Max: 7}
	p.Ranges[params.TileSizeX] = params.Range{Min: 1, Max: 3}

	report, err := s.Regenerate(context.Background(), p, constSource(0.5), []Handle{"a", "b"})
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}
	if len(scene.writes) != 14 || report.Writes != 14 {
		t.Fatalf("writes = %d (report %d), want 14", len(scene.writes), report.Writes)
	}

	want := []write{
		{"aShape", params.SizeX, 2},
		{"aShape", params.SizeY, 2.5},
		{"aShape", params.SizeZ, 0.35},
		{"a", params.Height, -0.15},
		{"a", params.RotateX, 94},
		{"a", params.RotateY, 87},
		{"a", params.RotateZ, 7},
	}
	for k, w := range want {
		got := scene.writes[k]
		if got.handle != w.handle || got.channel != w.channel || !near(got.value, w.value) {
			t.Errorf("write %d = %+v, want %+v", k, got, w)
		}
	}
	if scene.writes[7].handle != "bShape" {
		t.Errorf("second object first write = %+v", scene.writes[7])
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestRegenerateIndependentDraws(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	scene.targets["a"] = "aShape"
	scene.targets["b"] = "bShape"

	_, err := s.Regenerate(context.Background(), params.Default(), layout.NewSeeded(5), []Handle{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if scene.writes[0].value == scene.writes[7].value {
		t.Error("both objects received the same size x")
	}
}

func TestRegenerateRespectsKeepFlags(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	scene.targets["a"] = "aShape"

	p := params.Default()
	p.SetKeep(params.SizeY, true)
	p.SetKeep(params.RotateZ, true)

	if _, err := s.Regenerate(context.Background(), p, layout.NewSeeded(1), []Handle{"a"}); err != nil {
		t.Fatal(err)
	}
	if len(scene.writes) != 5 {
		t.Fatalf("writes = %d, want 5", len(scene.writes))
	}
	for _, w := range scene.writes {
		if w.channel == params.SizeY || w.channel == params.RotateZ {
			t.Errorf("kept channel %v was written", w.channel)
		}
	}
}

func TestRegenerateSkipsUnresolved(t *testing.T) {
	var buf bytes.Buffer
	scene := newRecordingScene()
	s := New(scene, WithLogger(log.New(&buf)))
	scene.targets["a"] = "aShape"

	report, err := s.Regenerate(context.Background(), params.Default(), layout.NewSeeded(1), []Handle{"ghost", "a"})
	if err != nil {
		t.Fatalf("Regenerate() error: %v", err)
	}
	if len(report.Skipped) != 1 || report.Skipped[0] != "ghost" {
		t.Errorf("Skipped = %v, want [ghost]", report.Skipped)
	}
	if report.Updated != 1 || len(scene.writes) != 7 {
		t.Errorf("Updated = %d, writes = %d, want 1 and 7", report.Updated, len(scene.writes))
	}
	if !strings.Contains(buf.String(), "ghost") {
		t.Error("expected a warning mentioning the skipped handle")
	}
}

func TestRegenerateContinuesAfterWriteFailure(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	scene.targets["a"] = "aShape"
	scene.targets["b"] = "bShape"
	scene.failWrite["aShape"] = true

	report, err := s.Regenerate(context.Background(), params.Default(), layout.NewSeeded(1), []Handle{"a", "b"})
	if !tgerrors.Is(err, tgerrors.ErrCodeExternal) {
		t.Fatalf("Regenerate() error = %v, want EXTERNAL", err)
	}
	if !errors.Is(err, errHost) {
		t.Error("joined error should keep the host cause")
	}
	// a: 3 size writes fail, 4 transform writes succeed; b: all 7 succeed
	if len(scene.writes) != 11 {
		t.Errorf("writes = %d, want 11", len(scene.writes))
	}
	if len(report.Failed) != 1 || report.Failed[0] != "a" {
		t.Errorf("Failed = %v, want [a]", report.Failed)
	}
	if report.Updated != 2 {
		t.Errorf("Updated = %d, want 2", report.Updated)
	}
}

type fixedSelection struct {
	handles []Handle
	err     error
}

func (f fixedSelection) CurrentSelection() ([]Handle, error) { return f.handles, f.err }

func TestRegenerateSelection(t *testing.T) {
	scene := newRecordingScene()
	s := New(scene)
	scene.targets["a"] = "aShape"

	report, err := s.RegenerateSelection(context.Background(), params.Default(), layout.NewSeeded(1), fixedSelection{handles: []Handle{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	if report.Updated != 1 {
		t.Errorf("Updated = %d, want 1", report.Updated)
	}

	_, err = s.RegenerateSelection(context.Background(), params.Default(), layout.NewSeeded(1), fixedSelection{err: errHost})
	if !tgerrors.Is(err, tgerrors.ErrCodeExternal) {
		t.Errorf("error = %v, want EXTERNAL", err)
	}
}

func TestTilesReturnsCopy(t *testing.T) {
	s := New(newRecordingScene(), WithTiles([]Tile{{Handle: "x"}}))
	tiles := s.Tiles()
	tiles[0].Handle = "y"
	if s.Tiles()[0].Handle != "x" {
		t.Error("Tiles() exposed internal state")
	}
}
