package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gridmux/internal/anim"
	"gridmux/internal/grid"
	"gridmux/internal/source"
	"gridmux/internal/surface"
	"gridmux/internal/tui/theme"
)

type viewState int

const (
	stateOverlay viewState = iota
	stateAdd
)

// Deps is everything the overlay needs from the outside world.
type Deps struct {
	Src    source.Source
	Grid   grid.Config
	Chords grid.Chords
	Clock  anim.Clock

	// OnAdd handles the reserved "add new" cell. Nil when the grid has no
	// reserved cell.
	OnAdd func(body string) error

	// StartInAdd opens the add dialog directly (the add-flow hotkey).
	StartInAdd bool

	// Warning is surfaced as a toast as soon as the overlay opens, e.g.
	// when the snippet store recovered from a corrupt file.
	Warning string
}

// Session owns the live state of one open overlay: render state, selection
// machine, and animation scheduler. There is at most one per model; opening
// a new one tears the old one down first.
type Session struct {
	cfg     grid.Config
	sel     *grid.Selection
	src     source.Source
	canvas  *surface.Canvas
	sched   *anim.Scheduler
	layout  grid.Layout
	pageMap grid.PageMap
	alpha   float64
	closing bool
	done    bool
}

// teardown deletes every primitive and cancels pending animations. Any
// scheduled step firing after this is a no-op: the canvas is empty and
// alpha writes against missing keys are ignored.
func (s *Session) teardown() {
	s.done = true
	s.canvas.Clear()
	s.sched.Close()
}

type model struct {
	deps    Deps
	session *Session
	nav     viewState
	input   textinput.Model
	width   int
	height  int
	toast   *toast
	clock   anim.Clock

	// activate is the item index delivered to the caller after the program
	// exits, or -1.
	activate   int
	reopenPage int // page to restore when the add dialog closes
	quitAfter  bool
}

// Run opens the overlay and blocks until it closes. It returns the index of
// the activated item, or -1 when the overlay was cancelled. Activation of
// the payload happens after the overlay is gone, mirroring the close-then-
// deliver ordering of the selection protocol.
func Run(deps Deps) (int, error) {
	m := newModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return -1, err
	}
	if fm, ok := final.(model); ok {
		return fm.activate, nil
	}
	return -1, nil
}

func newModel(deps Deps) model {
	if deps.Clock == nil {
		deps.Clock = anim.RealClock()
	}
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Placeholder = "snippet text"
	ti.Prompt = ""
	ti.TextStyle = theme.TextStyle
	ti.PlaceholderStyle = theme.SubTextStyle

	nav := stateOverlay
	if deps.StartInAdd {
		nav = stateAdd
	}
	m := model{
		deps:       deps,
		nav:        nav,
		input:      ti,
		clock:      deps.Clock,
		activate:   -1,
		reopenPage: 1,
	}
	if deps.Warning != "" {
		m.toast = &toast{message: deps.Warning, kind: toastWarning, expiresAt: deps.Clock.Now().Add(toastDuration)}
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.nav == stateAdd {
		return m.input.Focus()
	}
	if m.toast != nil {
		return toastExpireCmd()
	}
	return nil
}

// openSession builds a fresh session for the current terminal size. An
// existing session is fully torn down first: one active overlay,
// system-wide.
func (m *model) openSession() tea.Cmd {
	if m.session != nil {
		m.session.teardown()
		m.session = nil
	}
	if m.width == 0 || m.height == 0 {
		return nil
	}
	sel := grid.NewSelection(m.deps.Grid, m.deps.Src.Count())
	if m.reopenPage > 1 {
		sel.Page = m.reopenPage
		if last := sel.TotalPages(); sel.Page > last {
			sel.Page = last
		}
		m.reopenPage = 1
	}
	s := &Session{
		cfg:    m.deps.Grid,
		sel:    sel,
		src:    m.deps.Src,
		canvas: surface.NewCanvas(theme.BaseBg),
		sched:  anim.NewScheduler(m.clock),
	}
	s.layout = grid.Compute(
		grid.Rect{W: m.width, H: m.height},
		len(m.deps.Grid.Rows), len(m.deps.Grid.Columns),
		grid.DefaultLayoutSpec(),
	)
	s.pageMap = sel.PageMap()
	s.buildSurface(0)
	s.fadeOpen()
	m.session = s
	return m.animTickCmd()
}

// animTickCmd arms a wake-up for the next pending animation step.
func (m *model) animTickCmd() tea.Cmd {
	if m.session == nil {
		return nil
	}
	d, ok := m.session.sched.NextDue()
	if !ok {
		return nil
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return animTickMsg{} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.nav == stateAdd {
			return m, nil
		}
		if m.session == nil {
			return m, m.openSession()
		}
		// Resize: recompute geometry under the same keys at current alpha.
		m.session.layout = grid.Compute(
			grid.Rect{W: m.width, H: m.height},
			len(m.deps.Grid.Rows), len(m.deps.Grid.Columns),
			grid.DefaultLayoutSpec(),
		)
		m.session.buildSurface(m.session.alpha)
		return m, nil

	case animTickMsg:
		if m.session == nil {
			return m, nil
		}
		m.session.sched.Tick(m.clock.Now())
		if m.session.done {
			return m.afterSessionClosed()
		}
		return m, m.animTickCmd()

	case toastExpiredMsg:
		if m.toast != nil && m.toast.expired(m.clock.Now()) {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if m.nav == stateAdd {
			return m.handleAddKey(msg)
		}
		return m.handleOverlayKey(msg)
	}

	if m.nav == stateAdd {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleOverlayKey feeds a raw key through the selection machine and
// interprets the resulting effect. Every key is consumed here: the overlay
// owns the keyboard while it is open.
func (m model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	if s == nil || s.closing {
		return m, nil
	}

	prevColumn := s.sel.Column
	res := s.sel.Handle(msg.String(), m.deps.Chords)
	switch res.Effect {
	case grid.EffectClose:
		m.quitAfter = true
		s.fadeClose()
		return m, m.animTickCmd()

	case grid.EffectColumnChosen:
		s.recolor()
		return m, nil

	case grid.EffectPageChanged:
		s.crossfade()
		return m, m.animTickCmd()

	case grid.EffectDeleteToggled:
		s.setDeleteMask(s.sel.DeleteMode)
		s.recolor()
		s.refreshFooter(s.alpha)
		return m, nil

	case grid.EffectDelete:
		if err := s.src.Remove(res.Item); err != nil {
			m.toast = &toast{message: err.Error(), kind: toastError, expiresAt: m.clock.Now().Add(toastDuration)}
			return m, toastExpireCmd()
		}
		s.pulseFlash(res.Cell)
		s.sel.SetItemCount(s.src.Count())
		s.pageMap = s.sel.PageMap()
		s.refreshCells(s.alpha)
		return m, m.animTickCmd()

	case grid.EffectActivate:
		m.activate = res.Item
		m.quitAfter = true
		s.fadeClose()
		return m, m.animTickCmd()

	case grid.EffectReserved:
		m.reopenPage = s.sel.Page
		m.quitAfter = false
		s.fadeClose()
		return m, m.animTickCmd()

	case grid.EffectEmptyCell:
		// The chord consumed the pending column; drop its highlight.
		s.recolor()
		m.toast = &toast{message: "no item here", kind: toastInfo, expiresAt: m.clock.Now().Add(toastDuration)}
		return m, toastExpireCmd()

	case grid.EffectNone:
		// Delete-mode chords on reserved or empty cells resolve silently
		// but still clear the pending column.
		if prevColumn != s.sel.Column {
			s.recolor()
		}
		return m, nil
	}
	return m, nil
}

// afterSessionClosed runs once the close fade has torn the session down:
// either the program exits, or the add dialog takes over.
func (m model) afterSessionClosed() (tea.Model, tea.Cmd) {
	m.session = nil
	if m.quitAfter {
		return m, tea.Quit
	}
	m.nav = stateAdd
	m.input.SetValue("")
	return m, m.input.Focus()
}

func (m model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.deps.StartInAdd {
			return m, tea.Quit
		}
		m.nav = stateOverlay
		return m, m.openSession()
	case "enter":
		body := strings.TrimSpace(m.input.Value())
		if body == "" {
			return m, nil
		}
		if err := m.deps.OnAdd(body); err != nil {
			m.toast = &toast{message: err.Error(), kind: toastError, expiresAt: m.clock.Now().Add(toastDuration)}
			return m, toastExpireCmd()
		}
		if m.deps.StartInAdd {
			return m, tea.Quit
		}
		m.nav = stateOverlay
		// Land on the page that now holds the new item.
		m.reopenPage = grid.TotalPages(m.deps.Src.Count(), m.deps.Grid.PerPage)
		m.toast = &toast{message: "snippet saved", kind: toastSuccess, expiresAt: m.clock.Now().Add(toastDuration)}
		return m, tea.Batch(m.openSession(), toastExpireCmd())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.nav == stateAdd {
		return m.viewAdd()
	}
	if m.session == nil {
		return ""
	}
	frame := m.session.canvas.Render(m.width, m.height)
	if m.toast != nil {
		lines := strings.Split(frame, "\n")
		if len(lines) > 0 {
			lines[len(lines)-1] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.toast.render())
		}
		frame = strings.Join(lines, "\n")
	}
	return frame
}

func (m model) viewAdd() string {
	title := theme.Logo + theme.DimStyle.Render("  new snippet")
	hint := theme.DimStyle.Render("enter") + " " + theme.SubTextStyle.Render("save") + "  " +
		theme.DimStyle.Render("esc") + " " + theme.SubTextStyle.Render("back")
	box := theme.ModalStyle.Render(title + "\n\n" + m.input.View() + "\n\n" + hint)
	out := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	if m.toast != nil {
		lines := strings.Split(out, "\n")
		lines[len(lines)-1] = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.toast.render())
		out = strings.Join(lines, "\n")
	}
	return out
}
