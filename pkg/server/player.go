package server

import (
	"net"
	"sync"

	"github.com/jtbits/baboogee/pkg/protocol"
)

// Player is the authoritative server-side record for one connected session
// (spec 3). conn is jointly owned by this session's reader goroutine (read
// side) and the engine goroutine (write side, spec 9's "cyclic ownership");
// mu guards conn the same way the teacher's Player.mu guards its net.Conn.
type Player struct {
	ID           uint32
	Addr         string
	Coords       protocol.Coords
	Radius       uint8
	HP           uint8
	WeaponRange  uint8
	WeaponDamage uint8

	mu   sync.Mutex
	conn net.Conn
}

func (p *Player) wire() protocol.Player {
	return protocol.Player{ID: p.ID, Coords: p.Coords}
}

func saturatingSub(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
