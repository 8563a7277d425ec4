package grid

import "strings"

// Selection is the mutable state of one overlay session. It is created when
// the overlay opens and discarded when it closes; only the state machine
// mutates it.
type Selection struct {
	Column     int // index into Config.Columns, or NoColumn
	DeleteMode bool
	Page       int // 1-based
	itemCount  int
	cfg        Config
}

const NoColumn = -1

// Chords describes the control keys layered on top of the column/row letters.
// Control keys win over letter keys, so a quit key that collides with a
// column letter still quits.
type Chords struct {
	Quit     []string
	Delete   []string
	PageNext []string
	PagePrev []string
}

// DefaultChords uses keys that stay clear of the default column/row letters.
func DefaultChords() Chords {
	return Chords{
		Quit:     []string{"q", "esc", "ctrl+c"},
		Delete:   []string{"x"},
		PageNext: []string{"]", "right"},
		PagePrev: []string{"[", "left"},
	}
}

// Effect tells the caller what a key press did. The machine itself never
// touches stores, panes, or render primitives.
type Effect int

const (
	// EffectNone: the key was swallowed with no visible change. The overlay
	// owns the keyboard exclusively, so unmatched keys never propagate.
	EffectNone Effect = iota
	EffectClose
	EffectColumnChosen
	EffectPageChanged
	EffectDeleteToggled
	EffectActivate   // cell resolved in normal mode, overlay should close
	EffectReserved   // reserved cell chosen in normal mode
	EffectDelete     // cell resolved in delete mode, overlay stays open
	EffectEmptyCell  // chord landed on a cell with no item
)

// Result carries the resolved cell and item for activation effects.
type Result struct {
	Effect Effect
	Cell   Cell
	Item   int // item index, or Empty
}

func NewSelection(cfg Config, itemCount int) *Selection {
	return &Selection{
		Column:    NoColumn,
		Page:      1,
		itemCount: itemCount,
		cfg:       cfg,
	}
}

func (s *Selection) TotalPages() int { return TotalPages(s.itemCount, s.cfg.PerPage) }

func (s *Selection) ItemCount() int { return s.itemCount }

// PageMap derives the mapping for the current page.
func (s *Selection) PageMap() PageMap { return AssignPage(s.cfg, s.itemCount, s.Page) }

// SetItemCount is called after a delete mutates the backing store. The page
// is clamped immediately so it never points past the new last page.
func (s *Selection) SetItemCount(n int) {
	s.itemCount = n
	if last := s.TotalPages(); s.Page > last {
		s.Page = last
	}
}

func matches(key string, set []string) bool {
	for _, k := range set {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// Handle feeds one raw key press through the chording protocol. Priority
// order: quit, delete toggle, page navigation, column letter, row letter;
// anything else is swallowed.
func (s *Selection) Handle(key string, chords Chords) Result {
	switch {
	case matches(key, chords.Quit):
		return Result{Effect: EffectClose, Item: Empty}

	case matches(key, chords.Delete):
		s.DeleteMode = !s.DeleteMode
		s.Column = NoColumn
		return Result{Effect: EffectDeleteToggled, Item: Empty}

	case matches(key, chords.PageNext):
		return s.turnPage(1)

	case matches(key, chords.PagePrev):
		return s.turnPage(-1)
	}

	if s.Column == NoColumn {
		if col, ok := s.cfg.ColumnIndex(key); ok {
			s.Column = col
			return Result{Effect: EffectColumnChosen, Item: Empty}
		}
		return Result{Effect: EffectNone, Item: Empty}
	}

	row, ok := s.cfg.RowIndex(key)
	if !ok {
		return Result{Effect: EffectNone, Item: Empty}
	}
	cell := Cell{Row: row, Col: s.Column}
	s.Column = NoColumn

	if s.cfg.IsReserved(cell) {
		if s.DeleteMode {
			// Reserved cells have nothing to delete.
			return Result{Effect: EffectNone, Cell: cell, Item: Empty}
		}
		return Result{Effect: EffectReserved, Cell: cell, Item: Empty}
	}

	item := s.PageMap().ItemAt(cell)
	if item == Empty {
		if s.DeleteMode {
			return Result{Effect: EffectNone, Cell: cell, Item: Empty}
		}
		return Result{Effect: EffectEmptyCell, Cell: cell, Item: Empty}
	}
	if s.DeleteMode {
		return Result{Effect: EffectDelete, Cell: cell, Item: item}
	}
	return Result{Effect: EffectActivate, Cell: cell, Item: item}
}

// turnPage wraps around at both ends and always clears any pending column.
func (s *Selection) turnPage(dir int) Result {
	s.Column = NoColumn
	total := s.TotalPages()
	if total <= 1 {
		return Result{Effect: EffectNone, Item: Empty}
	}
	s.Page += dir
	if s.Page > total {
		s.Page = 1
	}
	if s.Page < 1 {
		s.Page = total
	}
	return Result{Effect: EffectPageChanged, Item: Empty}
}
