package grid

import (
	"fmt"
	"strings"
)

// Cell addresses one slot in the grid by key letters rather than indices, the
// same way the user types it: column letter then row letter.
type Cell struct {
	Row, Col int
}

// Config fixes the shape of the grid for one overlay session. It never
// changes while the overlay is open.
type Config struct {
	// Columns and Rows are the chord letters, in display order. A key may
	// appear in both: the first press is always read as a column.
	Columns []string
	Rows    []string

	PerPage int

	// Reserved marks one cell that never holds an item (e.g. "add new").
	Reserved    *Cell
	ReservedTag string // short label drawn in the reserved cell
}

// ErrInvalidConfig is wrapped by Validate failures so callers can test for
// sizing violations without string matching.
var ErrInvalidConfig = fmt.Errorf("invalid grid config")

func (c Config) Validate() error {
	if len(c.Columns) == 0 || len(c.Rows) == 0 {
		return fmt.Errorf("%w: need at least one column and one row", ErrInvalidConfig)
	}
	if c.PerPage < 1 {
		return fmt.Errorf("%w: items per page must be >= 1", ErrInvalidConfig)
	}
	capacity := len(c.Columns) * len(c.Rows)
	need := c.PerPage
	if c.Reserved != nil {
		need++
		if c.Reserved.Row < 0 || c.Reserved.Row >= len(c.Rows) ||
			c.Reserved.Col < 0 || c.Reserved.Col >= len(c.Columns) {
			return fmt.Errorf("%w: reserved cell outside grid", ErrInvalidConfig)
		}
	}
	if capacity < need {
		return fmt.Errorf("%w: %dx%d grid cannot hold %d cells", ErrInvalidConfig,
			len(c.Columns), len(c.Rows), need)
	}
	seen := map[string]bool{}
	for _, k := range c.Columns {
		k = strings.ToLower(k)
		if seen[k] {
			return fmt.Errorf("%w: duplicate column key %q", ErrInvalidConfig, k)
		}
		seen[k] = true
	}
	seen = map[string]bool{}
	for _, k := range c.Rows {
		k = strings.ToLower(k)
		if seen[k] {
			return fmt.Errorf("%w: duplicate row key %q", ErrInvalidConfig, k)
		}
		seen[k] = true
	}
	return nil
}

// ColumnIndex resolves a key press to a column, case-insensitively.
func (c Config) ColumnIndex(key string) (int, bool) {
	for i, k := range c.Columns {
		if strings.EqualFold(k, key) {
			return i, true
		}
	}
	return 0, false
}

func (c Config) RowIndex(key string) (int, bool) {
	for i, k := range c.Rows {
		if strings.EqualFold(k, key) {
			return i, true
		}
	}
	return 0, false
}

func (c Config) IsReserved(cell Cell) bool {
	return c.Reserved != nil && *c.Reserved == cell
}
