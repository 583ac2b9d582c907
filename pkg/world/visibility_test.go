package world

import (
	"testing"

	"github.com/jtbits/baboogee/pkg/protocol"
)

// TestIsInsideCircleBoundary exercises spec.md §8's explicit boundary case:
// dr²+dc² = r² must be included, not excluded.
func TestIsInsideCircleBoundary(t *testing.T) {
	center := protocol.Coords{Row: 10, Col: 10}

	cases := []struct {
		name   string
		point  protocol.Coords
		radius uint8
		want   bool
	}{
		{"exact boundary (dr=3,dc=4,r=5)", protocol.Coords{Row: 13, Col: 14}, 5, true},
		{"exact boundary (dr=5,dc=0,r=5)", protocol.Coords{Row: 15, Col: 10}, 5, true},
		{"exact boundary (dr=0,dc=5,r=5)", protocol.Coords{Row: 10, Col: 15}, 5, true},
		{"one past boundary", protocol.Coords{Row: 13, Col: 15}, 5, false},
		{"center itself", protocol.Coords{Row: 10, Col: 10}, 5, true},
		{"radius zero, same point", protocol.Coords{Row: 10, Col: 10}, 0, true},
		{"radius zero, adjacent point", protocol.Coords{Row: 10, Col: 11}, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsInsideCircle(center, c.radius, c.point); got != c.want {
				t.Errorf("IsInsideCircle(%v, %d, %v) = %v, want %v", center, c.radius, c.point, got, c.want)
			}
		})
	}
}

// TestIsInsideCircleNegativeDiff confirms the predicate is symmetric: a
// point with a row/col larger than the center (a negative dr/dc) is
// evaluated the same as the mirrored positive case, since the underlying
// arithmetic is done in a signed intermediate type (pkg/world/visibility.go)
// even though Coords itself is unsigned (spec.md §9.1).
func TestIsInsideCircleNegativeDiff(t *testing.T) {
	center := protocol.Coords{Row: 10, Col: 10}
	below := protocol.Coords{Row: 13, Col: 14}
	above := protocol.Coords{Row: 7, Col: 6}
	if !IsInsideCircle(center, 5, below) {
		t.Errorf("IsInsideCircle(%v, 5, %v) = false, want true", center, below)
	}
	if !IsInsideCircle(center, 5, above) {
		t.Errorf("IsInsideCircle(%v, 5, %v) = false, want true", center, above)
	}
}

// TestVisibleCellsClipsAtTopLeft confirms the bounding box clips at row/col 0
// when center-radius would otherwise go negative (spec.md §4.C, §8: "Visible-map
// computation ... never emits coordinates outside the map").
func TestVisibleCellsClipsAtTopLeft(t *testing.T) {
	m := New(20, 20)
	center := protocol.Coords{Row: 0, Col: 0}
	cells := m.VisibleCells(center, 5)
	for _, c := range cells {
		if !m.InBounds(c.Coords) {
			t.Fatalf("VisibleCells emitted out-of-bounds coords %v", c.Coords)
		}
	}
	// Every cell within the clipped disk around the top-left corner must be
	// present; none at negative row/col (which cannot be represented anyway,
	// since Coords is unsigned) leaked through.
	want := protocol.Coords{Row: 3, Col: 4} // dr=3,dc=4,r=5: exact boundary
	found := false
	for _, c := range cells {
		if c.Coords == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("VisibleCells(%v, 5) missing boundary cell %v", center, want)
	}
}

// TestVisibleCellsClipsAtBottomRight confirms the bounding box clips against
// Height-1/Width-1 rather than running past the map's far edge.
func TestVisibleCellsClipsAtBottomRight(t *testing.T) {
	m := New(20, 20)
	center := protocol.Coords{Row: 19, Col: 19}
	cells := m.VisibleCells(center, 5)
	for _, c := range cells {
		if c.Coords.Row > 19 || c.Coords.Col > 19 {
			t.Fatalf("VisibleCells emitted coords %v past the map's bottom-right edge", c.Coords)
		}
		if !m.InBounds(c.Coords) {
			t.Fatalf("VisibleCells emitted out-of-bounds coords %v", c.Coords)
		}
	}
	want := protocol.Coords{Row: 16, Col: 15} // dr=3,dc=4,r=5: exact boundary
	found := false
	for _, c := range cells {
		if c.Coords == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("VisibleCells(%v, 5) missing boundary cell %v", center, want)
	}
}

// TestVisibleCellsRowMajorOrder pins the output order spec.md §4.C requires
// ("row-major, top-left to bottom-right") so callers (and tests) can rely on it.
func TestVisibleCellsRowMajorOrder(t *testing.T) {
	m := New(20, 20)
	center := protocol.Coords{Row: 5, Col: 5}
	cells := m.VisibleCells(center, 2)
	for i := 1; i < len(cells); i++ {
		prev, cur := cells[i-1].Coords, cells[i].Coords
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col < prev.Col) {
			t.Fatalf("VisibleCells not row-major at index %d: %v before %v", i, prev, cur)
		}
	}
}

// TestVisibleCellsCountMatchesPredicate cross-checks VisibleCells' count
// against a brute-force scan using IsInsideCircle directly, over the full
// map, so the two can never silently disagree (spec.md §8's "visibility
// predicate" and "visible-map computation" properties are tied together).
func TestVisibleCellsCountMatchesPredicate(t *testing.T) {
	m := New(20, 20)
	center := protocol.Coords{Row: 10, Col: 10}
	radius := uint8(5)

	var want int
	for r := uint16(0); r < m.Height; r++ {
		for c := uint16(0); c < m.Width; c++ {
			if IsInsideCircle(center, radius, protocol.Coords{Row: r, Col: c}) {
				want++
			}
		}
	}
	got := len(m.VisibleCells(center, radius))
	if got != want {
		t.Errorf("VisibleCells count = %d, want %d (brute-force IsInsideCircle count)", got, want)
	}
}

// TestVisibleCellsTerrainMatchesMap confirms each emitted MapCell carries the
// map's own terrain block, not an occupant overlay (spec §4.C: "Occupant
// overlays are applied client-side").
func TestVisibleCellsTerrainMatchesMap(t *testing.T) {
	m := New(20, 20)
	center := protocol.Coords{Row: 0, Col: 0}
	m.SetOccupant(protocol.Coords{Row: 1, Col: 1}, 7)
	for _, c := range m.VisibleCells(center, 5) {
		if got := m.Block(c.Coords); got != c.Block {
			t.Errorf("MapCell{%v}.Block = %v, want map terrain %v", c.Coords, c.Block, got)
		}
	}
}
