package client

import (
	"strings"

	"github.com/jtbits/baboogee/pkg/protocol"
)

// glyph maps a terrain Block to a single rendered character. Exact glyph
// choice, color, and animation are explicit Non-goals (spec 1); this exists
// only so the state is visibly inspectable in a plain terminal.
func glyph(b protocol.Block) byte {
	switch b {
	case protocol.Grass:
		return '.'
	case protocol.WallHorizontal, protocol.WallVertical,
		protocol.WallTopLeft, protocol.WallTopRight,
		protocol.WallBottomLeft, protocol.WallBottomRight:
		return '#'
	default:
		return ' '
	}
}

// Render draws the known cells as a plain rectangular grid bounded by the
// min/max row and column currently cached, with the player's own position
// marked '@' and peers marked 'o'.
func (s *State) Render() string {
	if len(s.Cells) == 0 {
		return ""
	}
	minRow, maxRow := ^uint16(0), uint16(0)
	minCol, maxCol := ^uint16(0), uint16(0)
	for c := range s.Cells {
		if c.Row < minRow {
			minRow = c.Row
		}
		if c.Row > maxRow {
			maxRow = c.Row
		}
		if c.Col < minCol {
			minCol = c.Col
		}
		if c.Col > maxCol {
			maxCol = c.Col
		}
	}

	peerAt := make(map[protocol.Coords]bool, len(s.Peers))
	for _, coords := range s.Peers {
		peerAt[coords] = true
	}

	var b strings.Builder
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			coords := protocol.Coords{Row: row, Col: col}
			switch {
			case coords == s.Center:
				b.WriteByte('@')
			case peerAt[coords]:
				b.WriteByte('o')
			default:
				if block, ok := s.Cells[coords]; ok {
					b.WriteByte(glyph(block))
				} else {
					b.WriteByte(' ')
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
