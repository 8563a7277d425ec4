// Package surface is a key-addressable list of draw primitives composited
// into a terminal frame. Writing a primitive under an existing key replaces
// it in place, keeping its z-order; a new key appends on top. That identity
// rule is what lets partial redraws (column fades, crossfades) recolor cells
// without rebuilding the frame.
package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	runewidth "github.com/mattn/go-runewidth"

	"gridmux/internal/grid"
)

type Kind int

const (
	KindRect Kind = iota
	KindText
)

// Primitive is one declarative shape. Alpha is composited against whatever
// is already painted underneath, so fades are just alpha rewrites.
type Primitive struct {
	Kind  Kind
	Rect  grid.Rect
	Fill  string // hex background color, rects only
	Fg    string // hex text color
	Text  string
	Alpha float64 // 0 invisible .. 1 opaque
	Bold  bool
}

type entry struct {
	key  string
	prim Primitive
}

// Canvas owns the ordered primitive list for one overlay session.
type Canvas struct {
	order []entry
	index map[string]int
	base  string // screen background the bottom layer blends into
}

func NewCanvas(baseColor string) *Canvas {
	return &Canvas{index: make(map[string]int), base: baseColor}
}

// Apply is the single entry point for all mutations (key handlers, timer
// callbacks, page changes) so replace-vs-append semantics live in one place.
func (c *Canvas) Apply(key string, p Primitive) {
	if i, ok := c.index[key]; ok {
		c.order[i].prim = p
		return
	}
	c.index[key] = len(c.order)
	c.order = append(c.order, entry{key: key, prim: p})
}

// ApplyAbove inserts a new primitive directly above another key instead of
// on top of everything, so a mid-stack layer (like the delete-mode mask) can
// be added and removed without disturbing the text drawn over it. An
// existing key is replaced in place; an unknown anchor falls back to Apply.
func (c *Canvas) ApplyAbove(key, anchor string, p Primitive) {
	if i, ok := c.index[key]; ok {
		c.order[i].prim = p
		return
	}
	ai, ok := c.index[anchor]
	if !ok {
		c.Apply(key, p)
		return
	}
	at := ai + 1
	c.order = append(c.order, entry{})
	copy(c.order[at+1:], c.order[at:])
	c.order[at] = entry{key: key, prim: p}
	for j := at; j < len(c.order); j++ {
		c.index[c.order[j].key] = j
	}
}

// Get returns the current primitive under a key, if any.
func (c *Canvas) Get(key string) (Primitive, bool) {
	if i, ok := c.index[key]; ok {
		return c.order[i].prim, true
	}
	return Primitive{}, false
}

// SetAlpha rewrites just the alpha of an existing primitive. Missing keys
// are ignored so stale animation steps are harmless.
func (c *Canvas) SetAlpha(key string, alpha float64) {
	if i, ok := c.index[key]; ok {
		c.order[i].prim.Alpha = alpha
	}
}

// Delete removes a primitive by key. Identity of the remaining entries is
// preserved.
func (c *Canvas) Delete(key string) {
	i, ok := c.index[key]
	if !ok {
		return
	}
	c.order = append(c.order[:i], c.order[i+1:]...)
	delete(c.index, key)
	for j := i; j < len(c.order); j++ {
		c.index[c.order[j].key] = j
	}
}

// Clear drops every primitive. Used on teardown.
func (c *Canvas) Clear() {
	c.order = nil
	c.index = make(map[string]int)
}

func (c *Canvas) Len() int { return len(c.order) }

// Keys returns primitive keys bottom-to-top, mostly for tests.
func (c *Canvas) Keys() []string {
	out := make([]string, len(c.order))
	for i, e := range c.order {
		out[i] = e.key
	}
	return out
}

// paintCell is one character cell of the composited frame.
type paintCell struct {
	ch   rune
	fg   string
	bg   string
	bold bool
}

// blend mixes top over bottom in RGB space by alpha.
func blend(bottom, top string, alpha float64) string {
	if alpha >= 1 {
		return top
	}
	if alpha <= 0 {
		return bottom
	}
	b, err1 := colorful.Hex(bottom)
	t, err2 := colorful.Hex(top)
	if err1 != nil || err2 != nil {
		return top
	}
	return b.BlendRgb(t, alpha).Hex()
}

// Render composites the primitive list into a frame of the given size.
// Later primitives paint over earlier ones; text never overwrites with
// blanks outside its own glyphs.
func (c *Canvas) Render(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	buf := make([][]paintCell, h)
	for y := range buf {
		buf[y] = make([]paintCell, w)
		for x := range buf[y] {
			buf[y][x] = paintCell{ch: ' ', bg: c.base}
		}
	}

	for _, e := range c.order {
		p := e.prim
		if p.Alpha <= 0 {
			continue
		}
		switch p.Kind {
		case KindRect:
			for y := p.Rect.Y; y < p.Rect.Y+p.Rect.H && y < h; y++ {
				if y < 0 {
					continue
				}
				for x := p.Rect.X; x < p.Rect.X+p.Rect.W && x < w; x++ {
					if x < 0 {
						continue
					}
					cell := &buf[y][x]
					cell.bg = blend(cell.bg, p.Fill, p.Alpha)
					if cell.fg != "" {
						// A translucent rect dims any text beneath it.
						cell.fg = blend(cell.fg, p.Fill, p.Alpha)
					}
				}
			}
		case KindText:
			y := p.Rect.Y
			if y < 0 || y >= h {
				continue
			}
			x := p.Rect.X
			text := p.Text
			if p.Rect.W > 0 {
				text = runewidth.Truncate(text, p.Rect.W, "…")
			}
			for _, r := range text {
				rw := runewidth.RuneWidth(r)
				if x >= w {
					break
				}
				if x >= 0 {
					cell := &buf[y][x]
					cell.ch = r
					cell.fg = blend(cell.bg, p.Fg, p.Alpha)
					cell.bold = p.Bold
				}
				x += rw
			}
		}
	}

	return flatten(buf)
}

// flatten turns the cell buffer into styled lines, batching runs that share
// colors so the output is not one escape sequence per character.
func flatten(buf [][]paintCell) string {
	var out strings.Builder
	for y, row := range buf {
		if y > 0 {
			out.WriteByte('\n')
		}
		runStart := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[runStart]) {
				continue
			}
			var text strings.Builder
			for _, cell := range row[runStart:x] {
				text.WriteRune(cell.ch)
			}
			out.WriteString(styleFor(row[runStart]).Render(text.String()))
			runStart = x
		}
	}
	return out.String()
}

func sameStyle(a, b paintCell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func styleFor(cell paintCell) lipgloss.Style {
	st := lipgloss.NewStyle().Background(lipgloss.Color(cell.bg))
	if cell.fg != "" {
		st = st.Foreground(lipgloss.Color(cell.fg))
	}
	if cell.bold {
		st = st.Bold(true)
	}
	return st
}
