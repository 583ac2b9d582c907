// Package client holds the protocol-level state a BABOOGEE terminal client
// keeps locally: its own id/HP, the last known center, the visible-cell
// cache, and known peers (spec 1, "local copy of visible cells, known
// peers, HP"). Rendering detail (glyphs, cursor placement, animations) is
// explicitly out of scope (spec 1) — State only tracks what the wire
// protocol describes.
package client

import "github.com/jtbits/baboogee/pkg/protocol"

// State is the client-local mirror of server-pushed facts.
type State struct {
	ID          uint32
	Center      protocol.Coords
	HP          uint8
	Radius      uint8
	WeaponRange uint8
	Dead        bool

	Cells map[protocol.Coords]protocol.Block
	Peers map[uint32]protocol.Coords
}

// NewState returns an empty, not-yet-connected client state.
func NewState() *State {
	return &State{
		Cells: make(map[protocol.Coords]protocol.Block),
		Peers: make(map[uint32]protocol.Coords),
	}
}

// Apply folds one ServerPacket into the state. It mirrors original_source/
// client's per-variant match in its event loop, but carries no rendering —
// callers re-render after Apply returns.
func (s *State) Apply(pkt protocol.ServerPacket) {
	switch v := pkt.(type) {
	case protocol.NewClientCoordsVisibleMap:
		s.ID = v.ID
		s.Center = v.Coords
		s.HP = v.HP
		s.Radius = v.Radius
		s.WeaponRange = v.WeaponRange
		s.setCells(v.VisibleCoords)
		s.setPeers(v.Players)
	case protocol.NewCoords:
		s.Center = v.Center
		s.setCells(v.Coords)
		r := int32(s.Radius)
		for coords := range s.Cells {
			dr := int32(s.Center.Row) - int32(coords.Row)
			dc := int32(s.Center.Col) - int32(coords.Col)
			if dr*dr+dc*dc > r*r {
				delete(s.Cells, coords)
			}
		}
		s.prunePeers()
		s.setPeers(v.Players)
	case protocol.OtherPlayerMoved:
		s.Peers[v.ID] = v.Coords
	case protocol.OtherPlayerMovedOutsideRadius:
		delete(s.Peers, v.ID)
	case protocol.PlayerDisconnected:
		delete(s.Peers, v.ID)
	case protocol.PlayerWasShot:
		s.HP = saturatingSubU8(s.HP, v.Damage)
	case protocol.PlayerDied:
		s.HP = 0
		s.Dead = true
	}
}

// setCells merges newly-revealed cells into the cache (spec 4.D.5:
// "append-then-prune" — duplicates from an over-approximating server are
// harmless).
func (s *State) setCells(cells []protocol.MapCell) {
	for _, c := range cells {
		s.Cells[c.Coords] = c.Block
	}
}

func (s *State) setPeers(players []protocol.Player) {
	for _, p := range players {
		s.Peers[p.ID] = p.Coords
	}
}

// prunePeers drops every peer whose last known position falls outside the
// client's own disk around its new center (spec 4.D.5: "the client prunes
// its visible set ... after applying the new center").
func (s *State) prunePeers() {
	for id, coords := range s.Peers {
		dr := int32(s.Center.Row) - int32(coords.Row)
		dc := int32(s.Center.Col) - int32(coords.Col)
		r := int32(s.Radius)
		if dr*dr+dc*dc > r*r {
			delete(s.Peers, id)
		}
	}
}

func saturatingSubU8(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
