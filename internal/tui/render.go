package tui

import (
	"fmt"
	"strings"

	"gridmux/internal/grid"
	"gridmux/internal/surface"
	"gridmux/internal/tui/theme"
)

// Primitive identity keys. A redraw that reuses a key recolors in place;
// only genuinely new content appends. That is what keeps column selection
// and page turns flicker-free.
const (
	keyPanel      = "panel"
	keyDeleteMask = "mask"
	keyFooterBg   = "footer.bg"
	keyFooterText = "footer.text"
)

func cellKey(cell grid.Cell, part string) string {
	return fmt.Sprintf("cell.%d.%d.%s", cell.Row, cell.Col, part)
}

func pulseKey(cell grid.Cell) string {
	return fmt.Sprintf("pulse.%d.%d", cell.Row, cell.Col)
}

// buildSurface performs a full redraw: every primitive is (re)written under
// its stable key at the given alpha. Safe to call on resize.
func (s *Session) buildSurface(alpha float64) {
	s.canvas.Apply(keyPanel, surface.Primitive{
		Kind:  surface.KindRect,
		Rect:  s.layout.Panel,
		Fill:  theme.PanelBg,
		Alpha: alpha,
	})

	var topCellBg string
	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			topCellBg = cellKey(cell, "bg")
			s.canvas.Apply(topCellBg, surface.Primitive{
				Kind:  surface.KindRect,
				Rect:  s.cellInner(cell),
				Fill:  s.cellFill(cell),
				Alpha: alpha,
			})
		}
	}

	// The delete mask sits above cell backgrounds and below all text. It is
	// created only while delete mode is on; the anchor keeps its z-slot
	// stable across re-creation.
	if s.sel.DeleteMode {
		s.canvas.ApplyAbove(keyDeleteMask, topCellBg, surface.Primitive{
			Kind:  surface.KindRect,
			Rect:  s.layout.Panel,
			Fill:  theme.Error,
			Alpha: alpha * deleteMaskAlpha,
		})
	} else {
		s.canvas.Delete(keyDeleteMask)
	}

	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			s.drawCellText(grid.Cell{Row: r, Col: c}, alpha)
		}
	}

	s.refreshFooter(alpha)
}

const deleteMaskAlpha = 0.22

// cellInner shrinks a cell rect by one column on each side so neighboring
// cells read as separate tiles.
func (s *Session) cellInner(cell grid.Cell) grid.Rect {
	r := s.layout.Cell(cell.Row, cell.Col)
	if r.W > 2 {
		r.X++
		r.W -= 2
	}
	if r.H > 1 {
		r.H--
	}
	return r
}

func (s *Session) cellFill(cell grid.Cell) string {
	if s.sel.Column != grid.NoColumn && cell.Col == s.sel.Column {
		return theme.SurfaceBg
	}
	return theme.PanelBg
}

// letterColors implements the identity-letter rules: a letter takes the
// accent when its axis is the live selection, the base color when nothing is
// selected, and dims when some other column is selected.
func (s *Session) letterColors(cell grid.Cell) (colFg, rowFg string) {
	switch {
	case s.sel.Column == grid.NoColumn:
		return theme.SubText, theme.SubText
	case cell.Col == s.sel.Column:
		return theme.Accent, theme.Accent2
	default:
		return theme.Dim, theme.Dim
	}
}

func (s *Session) labelColor(cell grid.Cell, hasItem bool) string {
	if !hasItem {
		return theme.Overlay
	}
	if s.sel.Column != grid.NoColumn && cell.Col != s.sel.Column {
		return theme.Dim
	}
	return theme.Text
}

// drawCellText writes the chord letters, label, and badge for one cell at
// the current page mapping.
func (s *Session) drawCellText(cell grid.Cell, alpha float64) {
	inner := s.cellInner(cell)
	pad := 1
	colFg, rowFg := s.letterColors(cell)

	s.canvas.Apply(cellKey(cell, "col"), surface.Primitive{
		Kind:  surface.KindText,
		Rect:  grid.Rect{X: inner.X + pad, Y: inner.Y, W: 1},
		Text:  strings.ToUpper(s.cfg.Columns[cell.Col]),
		Fg:    colFg,
		Bold:  true,
		Alpha: alpha,
	})
	s.canvas.Apply(cellKey(cell, "row"), surface.Primitive{
		Kind:  surface.KindText,
		Rect:  grid.Rect{X: inner.X + pad + 1, Y: inner.Y, W: 1},
		Text:  strings.ToUpper(s.cfg.Rows[cell.Row]),
		Fg:    rowFg,
		Bold:  true,
		Alpha: alpha,
	})

	label, badge, hasItem := s.cellContent(cell)
	labelY := inner.Y + inner.H/2
	if inner.H <= 1 {
		labelY = inner.Y
	}
	s.canvas.Apply(cellKey(cell, "label"), surface.Primitive{
		Kind:  surface.KindText,
		Rect:  grid.Rect{X: inner.X + pad, Y: labelY, W: inner.W - 2*pad},
		Text:  label,
		Fg:    s.labelColor(cell, hasItem),
		Alpha: alpha,
	})
	s.canvas.Apply(cellKey(cell, "badge"), surface.Primitive{
		Kind:  surface.KindText,
		Rect:  grid.Rect{X: inner.X + pad, Y: inner.Y + inner.H - 1, W: inner.W - 2*pad},
		Text:  badge,
		Fg:    theme.Dim,
		Alpha: alpha,
	})
}

// cellContent resolves what one cell shows on the current page.
func (s *Session) cellContent(cell grid.Cell) (label, badge string, hasItem bool) {
	if s.cfg.IsReserved(cell) {
		return s.cfg.ReservedTag, "", true
	}
	idx := s.pageMap.ItemAt(cell)
	if idx == grid.Empty {
		return "·", "", false
	}
	item := s.src.At(idx)
	return item.Label, item.Badge, true
}

// refreshTexts rewrites only the text primitives for the current page map,
// leaving rectangles untouched. Used while a crossfade has the content
// hidden.
func (s *Session) refreshTexts(alpha float64) {
	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			s.drawCellText(grid.Cell{Row: r, Col: c}, alpha)
		}
	}
}

// refreshCells is the partial redraw after a page change or delete: text and
// colors are re-applied under existing keys; rectangles stay put.
func (s *Session) refreshCells(alpha float64) {
	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			s.canvas.Apply(cellKey(cell, "bg"), surface.Primitive{
				Kind:  surface.KindRect,
				Rect:  s.cellInner(cell),
				Fill:  s.cellFill(cell),
				Alpha: alpha,
			})
			s.drawCellText(cell, alpha)
		}
	}
	s.refreshFooter(alpha)
}

// recolor is the cheapest partial redraw: column-dependent colors only,
// used when a column is chosen or cleared.
func (s *Session) recolor() {
	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if p, ok := s.canvas.Get(cellKey(cell, "bg")); ok {
				p.Fill = s.cellFill(cell)
				s.canvas.Apply(cellKey(cell, "bg"), p)
			}
			colFg, rowFg := s.letterColors(cell)
			if p, ok := s.canvas.Get(cellKey(cell, "col")); ok {
				p.Fg = colFg
				s.canvas.Apply(cellKey(cell, "col"), p)
			}
			if p, ok := s.canvas.Get(cellKey(cell, "row")); ok {
				p.Fg = rowFg
				s.canvas.Apply(cellKey(cell, "row"), p)
			}
			if p, ok := s.canvas.Get(cellKey(cell, "label")); ok {
				_, _, hasItem := s.cellContent(cell)
				p.Fg = s.labelColor(cell, hasItem)
				s.canvas.Apply(cellKey(cell, "label"), p)
			}
		}
	}
}

func (s *Session) refreshFooter(alpha float64) {
	fill := theme.SurfaceBg
	textFg := theme.SubText
	hint := "col+row pick · [/] page · x delete · q quit"
	if s.sel.DeleteMode {
		fill = theme.Error
		textFg = theme.BaseBg
		hint = "DELETE MODE · col+row removes · x exits"
	}
	s.canvas.Apply(keyFooterBg, surface.Primitive{
		Kind:  surface.KindRect,
		Rect:  s.layout.Footer,
		Fill:  fill,
		Alpha: alpha,
	})
	text := fmt.Sprintf(" %s · %d/%d  %s", s.src.Title(), s.sel.Page, s.sel.TotalPages(), hint)
	s.canvas.Apply(keyFooterText, surface.Primitive{
		Kind:  surface.KindText,
		Rect:  grid.Rect{X: s.layout.Footer.X, Y: s.layout.Footer.Y, W: s.layout.Footer.W},
		Text:  text,
		Fg:    textFg,
		Alpha: alpha,
	})
}

// setDeleteMask adds or removes the translucent panel-wide layer that marks
// delete mode, anchored above the cell backgrounds.
func (s *Session) setDeleteMask(on bool) {
	if !on {
		s.canvas.Delete(keyDeleteMask)
		return
	}
	last := grid.Cell{Row: s.layout.Rows - 1, Col: s.layout.Cols - 1}
	s.canvas.ApplyAbove(keyDeleteMask, cellKey(last, "bg"), surface.Primitive{
		Kind:  surface.KindRect,
		Rect:  s.layout.Panel,
		Fill:  theme.Error,
		Alpha: s.alpha * deleteMaskAlpha,
	})
}

// contentKeys lists the primitives that take part in a page crossfade:
// everything except panel and footer chrome.
func (s *Session) contentKeys() []string {
	var keys []string
	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			cell := grid.Cell{Row: r, Col: c}
			for _, part := range []string{"col", "row", "label", "badge"} {
				keys = append(keys, cellKey(cell, part))
			}
		}
	}
	return keys
}

// allKeys lists every primitive the session owns, for open/close fades.
func (s *Session) allKeys() []string {
	keys := []string{keyPanel}
	for r := 0; r < s.layout.Rows; r++ {
		for c := 0; c < s.layout.Cols; c++ {
			keys = append(keys, cellKey(grid.Cell{Row: r, Col: c}, "bg"))
		}
	}
	if _, ok := s.canvas.Get(keyDeleteMask); ok {
		keys = append(keys, keyDeleteMask)
	}
	keys = append(keys, s.contentKeys()...)
	keys = append(keys, keyFooterBg, keyFooterText)
	return keys
}
