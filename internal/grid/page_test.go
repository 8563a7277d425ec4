package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Columns:     []string{"j", "k", "l"},
		Rows:        []string{"a", "s", "d", "f", "g"},
		PerPage:     14,
		Reserved:    &Cell{Row: 0, Col: 0},
		ReservedTag: "+ new",
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		items, perPage, want int
	}{
		{0, 14, 1},
		{1, 14, 1},
		{14, 14, 1},
		{15, 14, 2},
		{28, 14, 2},
		{29, 14, 3},
	}
	for _, c := range cases {
		require.Equal(t, c.want, TotalPages(c.items, c.perPage), "items=%d", c.items)
	}
}

func TestTraversalSkipsReserved(t *testing.T) {
	cfg := testConfig()
	order := Traversal(cfg)
	require.Len(t, order, 14)
	require.Equal(t, Cell{Row: 0, Col: 1}, order[0])
	require.Equal(t, Cell{Row: 0, Col: 2}, order[1])
	require.Equal(t, Cell{Row: 1, Col: 0}, order[2])
	for _, cell := range order {
		require.False(t, cfg.IsReserved(cell))
	}
}

func TestAssignPageUniqueMapping(t *testing.T) {
	cfg := testConfig()
	pm := AssignPage(cfg, 30, 2)

	seen := map[int]bool{}
	for _, cell := range Traversal(cfg) {
		idx := pm.ItemAt(cell)
		if idx == Empty {
			continue
		}
		require.False(t, seen[idx], "item %d mapped twice", idx)
		seen[idx] = true
		require.GreaterOrEqual(t, idx, 14)
		require.Less(t, idx, 28)
	}
	require.Equal(t, 14, pm.Occupied())
}

func TestAssignPagePartialLastPage(t *testing.T) {
	cfg := testConfig()
	pm := AssignPage(cfg, 30, 3)
	require.Equal(t, 2, pm.Occupied())
	require.Equal(t, 28, pm.ItemAt(Cell{Row: 0, Col: 1}))
	require.Equal(t, 29, pm.ItemAt(Cell{Row: 0, Col: 2}))
	require.Equal(t, Empty, pm.ItemAt(Cell{Row: 1, Col: 0}))
}

func TestAssignPageReservedStaysEmpty(t *testing.T) {
	cfg := testConfig()
	pm := AssignPage(cfg, 30, 1)
	require.Equal(t, Empty, pm.ItemAt(Cell{Row: 0, Col: 0}))
}
