package grid

// Empty marks a cell with no backing item.
const Empty = -1

// PageMap is the derived mapping from cells to item indices for one page.
// It is recomputed whenever the page or the backing item list changes and is
// never persisted.
type PageMap struct {
	cells map[Cell]int
	page  int
}

// TotalPages is ceil(n/perPage) with a minimum of one, so an empty source
// still renders a single blank page.
func TotalPages(itemCount, perPage int) int {
	if itemCount <= 0 {
		return 1
	}
	pages := (itemCount + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Traversal returns the order in which non-reserved cells receive items:
// row-major with the reserved cell skipped. The reserved cell holds its
// action regardless of page.
func Traversal(cfg Config) []Cell {
	order := make([]Cell, 0, len(cfg.Rows)*len(cfg.Columns))
	for r := range cfg.Rows {
		for c := range cfg.Columns {
			cell := Cell{Row: r, Col: c}
			if cfg.IsReserved(cell) {
				continue
			}
			order = append(order, cell)
		}
	}
	return order
}

// AssignPage fills cells with consecutive item indices starting at
// (page-1)*perPage. Slots past the end of the item list stay empty; a page
// never wraps into another page's items.
func AssignPage(cfg Config, itemCount, page int) PageMap {
	pm := PageMap{cells: make(map[Cell]int), page: page}
	start := (page - 1) * cfg.PerPage
	for i, cell := range Traversal(cfg) {
		if i >= cfg.PerPage {
			break
		}
		idx := start + i
		if idx < itemCount {
			pm.cells[cell] = idx
		}
	}
	return pm
}

// ItemAt returns the item index at a cell, or Empty.
func (p PageMap) ItemAt(cell Cell) int {
	if idx, ok := p.cells[cell]; ok {
		return idx
	}
	return Empty
}

func (p PageMap) Page() int { return p.page }

// Occupied reports how many cells on this page hold items.
func (p PageMap) Occupied() int { return len(p.cells) }
