package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benjaminghys/Tile-Generator-Maya/pkg/layout"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/params"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/preset"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/scene"
	"github.com/benjaminghys/Tile-Generator-Maya/pkg/session"
)

// panelCommand creates the interactive parameter window.
func (c *CLI) panelCommand() *cobra.Command {
	var (
		opts      paramOpts
		scenePath string
	)

	cmd := &cobra.Command{
		Use:   "panel",
		Short: "Edit parameters interactively and generate into a scene file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var store preset.Store
			if opts.preset != "" && !preset.IsFile(opts.preset) {
				st, err := c.openStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()
				store = st
			}
			pr, err := preset.Resolve(ctx, store, opts.preset)
			if err != nil {
				return err
			}

			// The TUI owns the terminal; keep session logs out of it.
			runner := &sceneRunner{path: scenePath, logger: log.New(io.Discard), rng: random(cmd, &opts)}

			final, err := tea.NewProgram(newPanelModel(ctx, pr, runner)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(panelModel); ok && m.status != "" {
				printInfo("%s", m.status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset name or file to start from")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible session")
	cmd.Flags().StringVarP(&scenePath, "scene", "s", defaultScenePath, "scene file to update")
	return cmd
}

// =============================================================================
// Scene runner
// =============================================================================

// panelRunner performs the panel's Generate and Re-generate actions.
type panelRunner interface {
	Generate(ctx context.Context, p *params.Set) (string, []layout.Placement, error)
	Regenerate(ctx context.Context, p *params.Set) (string, error)
}

// sceneRunner runs panel actions against a scene file.
type sceneRunner struct {
	path   string
	logger *log.Logger
	rng    layout.RandomSource
}

func (r *sceneRunner) Generate(ctx context.Context, p *params.Set) (string, []layout.Placement, error) {
	m, tiles, err := scene.ReadFile(r.path)
	if err != nil {
		return "", nil, err
	}
	s := session.New(m, session.WithLogger(r.logger), session.WithTiles(tiles))
	before := s.Len()
	if p.ClearBeforeGenerate {
		before = 0
	}
	n, genErr := s.Generate(ctx, p, r.rng)
	if err := scene.WriteFile(r.path, m, s.Tiles()); err != nil {
		return "", nil, err
	}
	if genErr != nil {
		return "", nil, genErr
	}

	created := s.Tiles()
	created = created[min(before, len(created)):]
	placements := make([]layout.Placement, len(created))
	for i, t := range created {
		placements[i] = t.Placement
	}
	return fmt.Sprintf("Generated %d tiles into %s", n, r.path), placements, nil
}

// Regenerate re-rolls the scene's saved selection, or every object when
// nothing is selected.
func (r *sceneRunner) Regenerate(ctx context.Context, p *params.Set) (string, error) {
	m, tiles, err := scene.ReadFile(r.path)
	if err != nil {
		return "", err
	}
	sel, _ := m.CurrentSelection()
	if len(sel) == 0 {
		sel = m.Transforms()
	}
	s := session.New(m, session.WithLogger(r.logger), session.WithTiles(tiles))
	report, regenErr := s.Regenerate(ctx, p, r.rng, sel)
	if err := scene.WriteFile(r.path, m, s.Tiles()); err != nil {
		return "", err
	}
	if regenErr != nil {
		return "", regenErr
	}
	msg := fmt.Sprintf("Finished re-generating values for %d objects", report.Updated)
	if n := len(report.Skipped); n > 0 {
		msg += fmt.Sprintf(" (%d skipped)", n)
	}
	return msg, nil
}

// =============================================================================
// Panel model
// =============================================================================

type itemKind int

const (
	itemMode itemKind = iota
	itemSimple
	itemMin
	itemMax
	itemColumns
	itemRows
	itemKeep
	itemClear
)

// panelItem is one editable line of the panel.
type panelItem struct {
	kind    itemKind
	group   params.Group
	field   params.Field
	channel params.Channel
}

// panelModel is the bubbletea model of the parameter window.
type panelModel struct {
	ctx       context.Context
	preset    *preset.Preset
	runner    panelRunner
	items     []panelItem
	cursor    int
	status    string
	statusErr bool
	last      []layout.Placement
}

func newPanelModel(ctx context.Context, p *preset.Preset, runner panelRunner) panelModel {
	var items []panelItem
	for _, g := range params.Groups() {
		items = append(items, panelItem{kind: itemMode, group: g}, panelItem{kind: itemSimple, group: g})
		for _, f := range g.Fields() {
			items = append(items,
				panelItem{kind: itemMin, group: g, field: f},
				panelItem{kind: itemMax, group: g, field: f})
		}
	}
	items = append(items, panelItem{kind: itemColumns}, panelItem{kind: itemRows})
	for _, c := range params.Channels() {
		items = append(items, panelItem{kind: itemKeep, channel: c})
	}
	items = append(items, panelItem{kind: itemClear})

	return panelModel{ctx: ctx, preset: p, runner: runner, items: items}
}

func (m panelModel) Init() tea.Cmd {
	return nil
}

func (m panelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case " ", "enter":
		m.toggle()
	case "g":
		m.generate()
	case "r":
		m.regenerate()
	}
	return m, nil
}

// enabled reports whether an item is editable. Simple values are editable in
// simple mode and min/max values in advanced mode.
func (m panelModel) enabled(it panelItem) bool {
	switch it.kind {
	case itemSimple:
		return m.mode(it.group) == params.Simple
	case itemMin, itemMax:
		return m.mode(it.group) == params.Advanced
	}
	return true
}

func (m panelModel) mode(g params.Group) params.Mode {
	mode, _ := m.preset.Selector(g)
	parsed, err := params.ParseMode(*mode)
	if err != nil {
		return params.Simple
	}
	return parsed
}

// move steps the cursor over enabled items.
func (m *panelModel) move(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.items); i += dir {
		if m.enabled(m.items[i]) {
			m.cursor = i
			return
		}
	}
}

// step returns the increment used by left/right on a numeric item.
func step(it panelItem) float64 {
	if it.group == params.GroupRotation && (it.kind == itemSimple || it.kind == itemMin || it.kind == itemMax) {
		return 1
	}
	return 0.05
}

func (m *panelModel) adjust(dir int) {
	it := m.items[m.cursor]
	if !m.enabled(it) {
		return
	}
	delta := float64(dir) * step(it)
	switch it.kind {
	case itemMode, itemKeep, itemClear:
		m.toggle()
	case itemSimple:
		_, v := m.preset.Selector(it.group)
		*v = roundStep(*v + delta)
	case itemMin:
		b := m.preset.Bounds(it.field)
		b.Min = roundStep(b.Min + delta)
	case itemMax:
		b := m.preset.Bounds(it.field)
		b.Max = roundStep(b.Max + delta)
	case itemColumns:
		m.preset.Grid.Columns = max(0, m.preset.Grid.Columns+dir)
	case itemRows:
		m.preset.Grid.Rows = max(0, m.preset.Grid.Rows+dir)
	}
}

func (m *panelModel) toggle() {
	it := m.items[m.cursor]
	switch it.kind {
	case itemMode:
		mode, _ := m.preset.Selector(it.group)
		if m.mode(it.group) == params.Simple {
			*mode = params.Advanced.String()
		} else {
			*mode = params.Simple.String()
		}
	case itemKeep:
		k := m.preset.KeepFlag(it.channel)
		*k = !*k
	case itemClear:
		m.preset.ClearBeforeGenerate = !m.preset.ClearBeforeGenerate
	}
}

func roundStep(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func (m *panelModel) generate() {
	p, err := m.preset.Params()
	if err != nil {
		m.setError(err)
		return
	}
	msg, placements, err := m.runner.Generate(m.ctx, p)
	if err != nil {
		m.setError(err)
		return
	}
	m.status, m.statusErr, m.last = msg, false, placements
}

func (m *panelModel) regenerate() {
	p, err := m.preset.Params()
	if err != nil {
		m.setError(err)
		return
	}
	msg, err := m.runner.Regenerate(m.ctx, p)
	if err != nil {
		m.setError(err)
		return
	}
	m.status, m.statusErr = msg, false
}

func (m *panelModel) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

// =============================================================================
// View
// =============================================================================

var (
	panelCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	panelSectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).MarginTop(1)
	panelDisabledStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func (m panelModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tile Generator"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ move  ←/→ adjust  space toggle  g generate  r re-generate  q quit"))
	b.WriteString("\n")

	for i, it := range m.items {
		if header := m.section(i); header != "" {
			b.WriteString(panelSectionStyle.Render(header))
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%-22s %s", m.label(it), m.value(it))
		switch {
		case i == m.cursor:
			b.WriteString(panelCursorStyle.Render("▸ " + line))
		case !m.enabled(it):
			b.WriteString(panelDisabledStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(StyleError.Render(m.status))
		} else {
			b.WriteString(StyleSuccess.Render(m.status))
		}
		b.WriteString("\n")
	}
	if len(m.last) > 0 {
		b.WriteString("\n")
		b.WriteString(placementTable(m.last, 8))
		b.WriteString("\n")
	}
	return b.String()
}

// section returns the heading printed before item i, if any.
func (m panelModel) section(i int) string {
	it := m.items[i]
	if i > 0 && m.items[i-1].kind == it.kind && it.kind >= itemColumns {
		return ""
	}
	switch it.kind {
	case itemMode:
		return titleCase(it.group.String())
	case itemColumns:
		return "Grid"
	case itemKeep:
		return "Keep on re-generate"
	case itemClear:
		return "Scene"
	}
	return ""
}

func (m panelModel) label(it panelItem) string {
	switch it.kind {
	case itemMode:
		return "mode"
	case itemSimple:
		return "value"
	case itemMin:
		return it.field.String() + " min"
	case itemMax:
		return it.field.String() + " max"
	case itemColumns:
		return "columns"
	case itemRows:
		return "rows"
	case itemKeep:
		return it.channel.String()
	default:
		return "clear before generate"
	}
}

func (m panelModel) value(it panelItem) string {
	switch it.kind {
	case itemMode:
		return m.mode(it.group).String()
	case itemSimple:
		_, v := m.preset.Selector(it.group)
		return fmt.Sprintf("%g", *v)
	case itemMin:
		return fmt.Sprintf("%g", m.preset.Bounds(it.field).Min)
	case itemMax:
		return fmt.Sprintf("%g", m.preset.Bounds(it.field).Max)
	case itemColumns:
		return fmt.Sprint(m.preset.Grid.Columns)
	case itemRows:
		return fmt.Sprint(m.preset.Grid.Rows)
	case itemKeep:
		return checkbox(*m.preset.KeepFlag(it.channel))
	default:
		return checkbox(m.preset.ClearBeforeGenerate)
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
