// Package world holds the authoritative map: terrain, occupancy, and the
// visibility/containment predicates the engine uses to decide what a player
// can see. A Map carries no internal locking of its own — per spec 5's
// option (a), all mutation is confined to the single engine goroutine that
// owns it (pkg/server's engine), the same way the teacher's Server.world is
// only ever mutated from handlers serialized behind Server.mu or, here,
// behind the engine's single event-consumer goroutine.
package world

import (
	"fmt"
	"math/rand"

	"github.com/jtbits/baboogee/pkg/protocol"
)

// MinSize and MaxSize bound generated map dimensions: NewGenerated draws
// height and width from [MinSize, MaxSize), i.e. 20 to 49 inclusive.
const (
	MinSize = 20
	MaxSize = 50
)

// Map is a height×width rectangle of terrain cells, each optionally
// occupied by a player id.
type Map struct {
	Height uint16
	Width  uint16

	blocks   [][]protocol.Block
	occupant [][]*uint32
}

// NewGenerated builds a Map using rng for both dimensions and interior
// layout: height and width are drawn uniformly from [MinSize, MaxSize), the
// border ring is walls, and the interior is grass — the generator contract
// spec 4.C names plus the wall kinds spec 3's Block enum declares but the
// distilled spec leaves homeless (SPEC_FULL 4.C).
func NewGenerated(rng *rand.Rand) *Map {
	height := uint16(MinSize + rng.Intn(MaxSize-MinSize))
	width := uint16(MinSize + rng.Intn(MaxSize-MinSize))
	return newFilled(height, width)
}

// New builds a Map of the given dimensions with the same border-wall,
// grass-interior layout as NewGenerated. Used by tests that need a fixed
// size.
func New(height, width uint16) *Map {
	return newFilled(height, width)
}

func newFilled(height, width uint16) *Map {
	blocks := make([][]protocol.Block, height)
	occupant := make([][]*uint32, height)
	for r := uint16(0); r < height; r++ {
		blocks[r] = make([]protocol.Block, width)
		occupant[r] = make([]*uint32, width)
		for c := uint16(0); c < width; c++ {
			blocks[r][c] = borderBlock(r, c, height, width)
		}
	}
	return &Map{Height: height, Width: width, blocks: blocks, occupant: occupant}
}

func borderBlock(r, c, height, width uint16) protocol.Block {
	top := r == 0
	bottom := r == height-1
	left := c == 0
	right := c == width-1
	switch {
	case top && left:
		return protocol.WallTopLeft
	case top && right:
		return protocol.WallTopRight
	case bottom && left:
		return protocol.WallBottomLeft
	case bottom && right:
		return protocol.WallBottomRight
	case top || bottom:
		return protocol.WallHorizontal
	case left || right:
		return protocol.WallVertical
	default:
		return protocol.Grass
	}
}

// InBounds reports whether c names a cell of the map.
func (m *Map) InBounds(c protocol.Coords) bool {
	return c.Row < m.Height && c.Col < m.Width
}

// Block returns the terrain at c. Panics if c is out of bounds; callers
// must check InBounds first, exactly like indexing a Go slice.
func (m *Map) Block(c protocol.Coords) protocol.Block {
	return m.blocks[c.Row][c.Col]
}

// Occupant returns the id occupying c, if any.
func (m *Map) Occupant(c protocol.Coords) (id uint32, ok bool) {
	p := m.occupant[c.Row][c.Col]
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SetOccupant installs id as the occupant of c. Returns an error if c is
// already occupied — callers are expected to check Occupant first; this is
// a belt-and-braces invariant check, not the primary control path.
func (m *Map) SetOccupant(c protocol.Coords, id uint32) error {
	if m.occupant[c.Row][c.Col] != nil {
		return fmt.Errorf("world: cell %v already occupied", c)
	}
	v := id
	m.occupant[c.Row][c.Col] = &v
	return nil
}

// ClearOccupant removes whatever occupant is at c, if any.
func (m *Map) ClearOccupant(c protocol.Coords) {
	m.occupant[c.Row][c.Col] = nil
}

// MoveOccupant relocates id's occupancy from `from` to `to` as a single
// step: clear the old cell, install the new one. Callers must have already
// validated that `to` is empty and in bounds (spec 4.D.2-3); this keeps the
// map's occupant grid and the player's own Coords field from ever
// disagreeing (spec 9, "Map ↔ Player back-reference").
func (m *Map) MoveOccupant(from, to protocol.Coords, id uint32) error {
	if m.occupant[to.Row][to.Col] != nil {
		return fmt.Errorf("world: target cell %v already occupied", to)
	}
	m.ClearOccupant(from)
	return m.SetOccupant(to, id)
}

// RandomCoords returns a uniform sample in [0, height) × [0, width).
func RandomCoords(rng *rand.Rand, height, width uint16) protocol.Coords {
	return protocol.Coords{
		Row: uint16(rng.Intn(int(height))),
		Col: uint16(rng.Intn(int(width))),
	}
}

// FindSpawn looks for an empty cell to place a newly connected player.
// It retries up to `retries` uniformly random cells (spec 9.2); if all of
// them collide it falls back to a deterministic row-major scan for the
// first empty cell. ok is false only when every cell on the map is
// occupied.
func (m *Map) FindSpawn(rng *rand.Rand, retries int) (coords protocol.Coords, ok bool) {
	for i := 0; i < retries; i++ {
		c := RandomCoords(rng, m.Height, m.Width)
		if _, occupied := m.Occupant(c); !occupied {
			return c, true
		}
	}
	for r := uint16(0); r < m.Height; r++ {
		for c := uint16(0); c < m.Width; c++ {
			cand := protocol.Coords{Row: r, Col: c}
			if _, occupied := m.Occupant(cand); !occupied {
				return cand, true
			}
		}
	}
	return protocol.Coords{}, false
}
