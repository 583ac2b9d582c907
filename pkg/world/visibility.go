package world

import "github.com/jtbits/baboogee/pkg/protocol"

// IsInsideCircle reports whether point lies within Euclidean distance
// radius of center, inclusive of the boundary (spec 4.C). All arithmetic is
// done in int32 so the row/col subtraction can go negative even though
// Coords themselves are unsigned.
func IsInsideCircle(center protocol.Coords, radius uint8, point protocol.Coords) bool {
	dr := int32(center.Row) - int32(point.Row)
	dc := int32(center.Col) - int32(point.Col)
	r := int32(radius)
	return dr*dr+dc*dc <= r*r
}

// VisibleCells returns the terrain cells within radius of center, clipped
// to the map, in row-major order (spec 4.C — the order is pinned so tests
// can assert on it directly). Occupant overlays are not applied; a MapCell
// only ever carries the map's own terrain block.
func (m *Map) VisibleCells(center protocol.Coords, radius uint8) []protocol.MapCell {
	r := int32(radius)

	top := int32(center.Row) - r
	if top < 0 {
		top = 0
	}
	left := int32(center.Col) - r
	if left < 0 {
		left = 0
	}
	bottom := int32(center.Row) + r
	if bottom > int32(m.Height)-1 {
		bottom = int32(m.Height) - 1
	}
	right := int32(center.Col) + r
	if right > int32(m.Width)-1 {
		right = int32(m.Width) - 1
	}

	var cells []protocol.MapCell
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			point := protocol.Coords{Row: uint16(row), Col: uint16(col)}
			if IsInsideCircle(center, radius, point) {
				cells = append(cells, protocol.MapCell{Block: m.Block(point), Coords: point})
			}
		}
	}
	return cells
}
