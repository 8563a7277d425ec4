package grid

// Rect is a rectangle in terminal character cells. X/Y are the top-left
// corner relative to the screen origin.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// LayoutSpec describes how the overlay panel carves up the screen.
type LayoutSpec struct {
	WidthFrac   float64 // fraction of screen width the panel occupies
	HeightFrac  float64 // fraction of screen height
	Margin      int     // minimum gap between panel and screen edge
	CellPad     int     // horizontal padding inside each cell
	MaxWidth    int     // hard cap so very wide terminals don't stretch cells
	FooterH     int
	FooterGap   int
}

// DefaultLayoutSpec matches the proportions the pickers use.
func DefaultLayoutSpec() LayoutSpec {
	return LayoutSpec{
		WidthFrac:  0.82,
		HeightFrac: 0.72,
		Margin:     1,
		CellPad:    1,
		MaxWidth:   120,
		FooterH:    1,
		FooterGap:  1,
	}
}

// Layout is the computed geometry for one overlay frame.
type Layout struct {
	Panel  Rect
	Cells  []Rect // row-major, len = rows*cols
	Footer Rect
	Rows   int
	Cols   int
}

// Cell returns the rect for (row, col). Callers must pass indices inside the
// grid; out-of-range access is a programming error, same as slice indexing.
func (l Layout) Cell(row, col int) Rect {
	return l.Cells[row*l.Cols+col]
}

// Compute lays out a rows x cols grid centered in the screen bounds. It is a
// pure function and cheap enough to call on every resize or redraw.
func Compute(screen Rect, rows, cols int, spec LayoutSpec) Layout {
	pw := int(float64(screen.W) * spec.WidthFrac)
	ph := int(float64(screen.H) * spec.HeightFrac)

	if spec.MaxWidth > 0 && pw > spec.MaxWidth {
		pw = spec.MaxWidth
	}
	if pw > screen.W-2*spec.Margin {
		pw = screen.W - 2*spec.Margin
	}
	maxH := screen.H - 2*spec.Margin - spec.FooterH - spec.FooterGap
	if ph > maxH {
		ph = maxH
	}
	if pw < cols {
		pw = cols
	}
	if ph < rows {
		ph = rows
	}

	// Divide the inner area evenly; the panel shrinks to a multiple of the
	// cell size so there is no ragged remainder on the right or bottom.
	cellW := pw / cols
	cellH := ph / rows
	pw = cellW * cols
	ph = cellH * rows

	px := screen.X + (screen.W-pw)/2
	py := screen.Y + (screen.H-ph-spec.FooterH-spec.FooterGap)/2
	if py < screen.Y+spec.Margin {
		py = screen.Y + spec.Margin
	}

	cells := make([]Rect, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, Rect{
				X: px + c*cellW,
				Y: py + r*cellH,
				W: cellW,
				H: cellH,
			})
		}
	}

	return Layout{
		Panel:  Rect{X: px, Y: py, W: pw, H: ph},
		Cells:  cells,
		Footer: Rect{X: px, Y: py + ph + spec.FooterGap, W: pw, H: spec.FooterH},
		Rows:   rows,
		Cols:   cols,
	}
}
