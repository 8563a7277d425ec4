package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"gridmux/internal/grid"
	"gridmux/internal/source"
	"gridmux/internal/tui/theme"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) advance(d time.Duration) { f.now = f.now.Add(d) }

type fakeSource struct {
	items     []string
	removed   []int
	removeErr error
}

func (f *fakeSource) Title() string { return "fake" }

func (f *fakeSource) Count() int { return len(f.items) }

func (f *fakeSource) At(i int) source.Item { return source.Item{Label: f.items[i]} }

func (f *fakeSource) Activate(i int) error { return nil }

func (f *fakeSource) Remove(i int) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, i)
	f.items = append(f.items[:i], f.items[i+1:]...)
	return nil
}

func (f *fakeSource) Removable() bool { return true }

func testGrid(reserved bool) grid.Config {
	cfg := grid.Config{
		Columns: []string{"j", "k", "l"},
		Rows:    []string{"a", "s", "d", "f", "g"},
		PerPage: 14,
	}
	if reserved {
		cfg.Reserved = &grid.Cell{Row: 0, Col: 0}
		cfg.ReservedTag = "+ new"
	}
	return cfg
}

func newTestModel(t *testing.T, src *fakeSource, reserved bool) (model, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	deps := Deps{
		Src:    src,
		Grid:   testGrid(reserved),
		Chords: grid.DefaultChords(),
		Clock:  clk,
		OnAdd:  func(body string) error { src.items = append(src.items, body); return nil },
	}
	m := newModel(deps)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(model), clk
}

func press(t *testing.T, m model, key string) (model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

// settle advances the clock past every pending animation step.
func settle(t *testing.T, m model, clk *fakeClock) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i < 20; i++ {
		next, c := m.Update(animTickMsg{})
		m = next.(model)
		cmd = c
		if m.session == nil || !m.session.sched.Pending() {
			return m, cmd
		}
		clk.advance(50 * time.Millisecond)
	}
	t.Fatal("animations never settled")
	return m, cmd
}

func items(n int) *fakeSource {
	f := &fakeSource{}
	for i := 0; i < n; i++ {
		f.items = append(f.items, fmt.Sprintf("item %02d", i))
	}
	return f
}

func TestOverlayOpensAndRendersGrid(t *testing.T) {
	m, clk := newTestModel(t, items(5), false)
	m, _ = settle(t, m, clk)

	view := ansi.Strip(m.View())
	require.Contains(t, view, "item 00")
	require.Contains(t, view, "item 04")
	require.Contains(t, view, "fake")
	require.Contains(t, view, "1/1")
}

func TestChordActivatesAndCloses(t *testing.T) {
	m, clk := newTestModel(t, items(20), false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "k")
	m, _ = press(t, m, "s")
	require.True(t, m.session.closing)

	var cmd tea.Cmd
	m, cmd = settle(t, m, clk)
	require.Nil(t, m.session, "session is torn down after the close fade")
	// Row-major: (0,0)=0 (0,1)=1 (0,2)=2 (1,0)=3 (1,1)=4.
	require.Equal(t, 4, m.activate)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitKeyDeliversNothing(t *testing.T) {
	m, clk := newTestModel(t, items(5), false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "q")
	var cmd tea.Cmd
	m, cmd = settle(t, m, clk)
	require.Equal(t, -1, m.activate)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestKeysDuringCloseAreIgnored(t *testing.T) {
	m, clk := newTestModel(t, items(20), false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "q")
	m, _ = press(t, m, "k")
	m, _ = press(t, m, "s")
	m, _ = settle(t, m, clk)
	require.Equal(t, -1, m.activate, "chord after quit must not activate")
}

func TestPageTurnUpdatesFooter(t *testing.T) {
	m, clk := newTestModel(t, items(20), false)
	m, _ = settle(t, m, clk)
	require.Contains(t, ansi.Strip(m.View()), "1/2")

	m, _ = press(t, m, "]")
	m, _ = settle(t, m, clk)

	view := ansi.Strip(m.View())
	require.Contains(t, view, "2/2")
	require.Contains(t, view, "item 14")
}

func TestDeleteFlow(t *testing.T) {
	src := items(20)
	m, clk := newTestModel(t, src, false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "x")
	_, ok := m.session.canvas.Get(keyDeleteMask)
	require.True(t, ok, "delete mask is present in delete mode")
	require.Contains(t, ansi.Strip(m.View()), "DELETE MODE")

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "a")
	require.Equal(t, []int{0}, src.removed)
	require.True(t, m.session.sel.DeleteMode, "delete mode persists")
	require.Equal(t, 19, m.session.sel.ItemCount())

	m, _ = settle(t, m, clk)
	require.Contains(t, ansi.Strip(m.View()), "item 01")

	m, _ = press(t, m, "x")
	_, ok = m.session.canvas.Get(keyDeleteMask)
	require.False(t, ok, "mask removed when delete mode ends")
}

func TestDeleteErrorShowsToast(t *testing.T) {
	src := items(5)
	src.removeErr = fmt.Errorf("disk full")
	m, clk := newTestModel(t, src, false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "x")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "a")
	require.Contains(t, ansi.Strip(m.View()), "disk full")
}

func TestEmptyCellShowsToast(t *testing.T) {
	m, clk := newTestModel(t, items(2), false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "g")
	require.Contains(t, ansi.Strip(m.View()), "no item here")
	require.NotNil(t, m.session, "overlay stays open")
}

func TestEmptyCellChordClearsColumnHighlight(t *testing.T) {
	m, clk := newTestModel(t, items(2), false)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "j")
	cell := grid.Cell{Row: 0, Col: 0}
	bg, _ := m.session.canvas.Get(cellKey(cell, "bg"))
	require.Equal(t, theme.SurfaceBg, bg.Fill)
	col, _ := m.session.canvas.Get(cellKey(cell, "col"))
	require.Equal(t, theme.Accent, col.Fg)

	// The chord lands on an empty cell; the machine is idle again and the
	// canvas must not keep the column highlight.
	m, _ = press(t, m, "g")
	require.Equal(t, grid.NoColumn, m.session.sel.Column)
	bg, _ = m.session.canvas.Get(cellKey(cell, "bg"))
	require.Equal(t, theme.PanelBg, bg.Fill)
	col, _ = m.session.canvas.Get(cellKey(cell, "col"))
	require.Equal(t, theme.SubText, col.Fg)

	other, _ := m.session.canvas.Get(cellKey(grid.Cell{Row: 0, Col: 1}, "col"))
	require.Equal(t, theme.SubText, other.Fg, "no letter stays dimmed once idle")
}

func TestDeleteModeNoopChordClearsColumnHighlight(t *testing.T) {
	m, clk := newTestModel(t, items(2), true)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "x")
	m, _ = press(t, m, "j")
	cell := grid.Cell{Row: 0, Col: 0}
	bg, _ := m.session.canvas.Get(cellKey(cell, "bg"))
	require.Equal(t, theme.SurfaceBg, bg.Fill)

	// Reserved cell in delete mode: silent no-op, but the pending column
	// is consumed and its highlight must go with it.
	m, _ = press(t, m, "a")
	require.Equal(t, grid.NoColumn, m.session.sel.Column)
	bg, _ = m.session.canvas.Get(cellKey(cell, "bg"))
	require.Equal(t, theme.PanelBg, bg.Fill)

	// Same for an empty cell while delete mode stays on.
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "g")
	require.Equal(t, grid.NoColumn, m.session.sel.Column)
	bg, _ = m.session.canvas.Get(cellKey(cell, "bg"))
	require.Equal(t, theme.PanelBg, bg.Fill)
	require.True(t, m.session.sel.DeleteMode)
}

func TestReservedCellOpensAddDialog(t *testing.T) {
	src := items(3)
	m, clk := newTestModel(t, src, true)
	m, _ = settle(t, m, clk)
	require.Contains(t, ansi.Strip(m.View()), "+ new")

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "a")
	m, _ = settle(t, m, clk)
	require.Equal(t, stateAdd, m.nav)
	require.Contains(t, ansi.Strip(m.View()), "new snippet")

	for _, r := range "hello" {
		m, _ = press(t, m, string(r))
	}
	m, _ = press(t, m, "enter")
	require.Equal(t, 4, src.Count())
	require.Equal(t, stateOverlay, m.nav)

	m, _ = settle(t, m, clk)
	require.Contains(t, ansi.Strip(m.View()), "hello")
}

func TestAddDialogEscReturnsToOverlay(t *testing.T) {
	m, clk := newTestModel(t, items(3), true)
	m, _ = settle(t, m, clk)

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "a")
	m, _ = settle(t, m, clk)
	require.Equal(t, stateAdd, m.nav)

	m, _ = press(t, m, "esc")
	require.Equal(t, stateOverlay, m.nav)
	m, _ = settle(t, m, clk)
	require.Contains(t, ansi.Strip(m.View()), "item 00")
}

func TestResizeKeepsOverlay(t *testing.T) {
	m, clk := newTestModel(t, items(5), false)
	m, _ = settle(t, m, clk)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(model)
	view := ansi.Strip(m.View())
	require.Contains(t, view, "item 00")
}
