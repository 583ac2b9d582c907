package server

import (
	"math/rand"
	"net"

	"github.com/jtbits/baboogee/pkg/eventlog"
	"github.com/jtbits/baboogee/pkg/protocol"
	"github.com/jtbits/baboogee/pkg/world"
)

// eventKind tags one clientEvent the same way original_source/server's
// ClientEvent enum does (spec 4.D "Inbound events").
type eventKind int

const (
	evConnect eventKind = iota
	evDisconnect
	evRead
	evError
)

// clientEvent is the single queue element readers produce and the engine
// consumes (spec 4.D/5, "Variant fan-in/fan-out over a single channel").
type clientEvent struct {
	kind eventKind
	addr string
	conn net.Conn
	data []byte
	err  error
}

// engine is the authoritative game state: map, player table, id counter
// (spec 4.D "State"). It is mutated exclusively by the single goroutine
// running Server.run — no internal locking, per spec 5 option (a).
type engine struct {
	cfg   Config
	world *world.Map
	rng   *rand.Rand
	log   *eventlog.Logger

	clients   map[uint32]*Player
	addrIndex map[string]uint32
	idCounter uint32

	buf []byte // engine scratch buffer, spec 5: "a single scratch buffer (>=512 bytes)"
}

func newEngine(cfg Config, rng *rand.Rand, log *eventlog.Logger) *engine {
	var m *world.Map
	if cfg.MapHeight > 0 && cfg.MapWidth > 0 {
		m = world.New(cfg.MapHeight, cfg.MapWidth)
	} else {
		m = world.NewGenerated(rng)
	}
	return &engine{
		cfg:       cfg,
		world:     m,
		rng:       rng,
		log:       log,
		clients:   make(map[uint32]*Player),
		addrIndex: make(map[string]uint32),
		buf:       make([]byte, 65536),
	}
}

func (e *engine) handle(ev clientEvent) {
	switch ev.kind {
	case evConnect:
		e.handleConnect(ev.addr, ev.conn)
	case evDisconnect:
		e.handleDisconnect(ev.addr)
	case evRead:
		e.handleRead(ev.addr, ev.data)
	case evError:
		e.handleError(ev.addr, ev.err)
	}
}

// handleConnect implements spec 4.D's Connect handler.
func (e *engine) handleConnect(addr string, conn net.Conn) {
	coords, ok := e.world.FindSpawn(e.rng, e.cfg.SpawnRetries)
	if !ok {
		e.log.Log(eventlog.Rejected, 0, "map full, rejecting "+addr)
		conn.Close()
		return
	}

	id := e.idCounter
	e.idCounter++
	if err := e.world.SetOccupant(coords, id); err != nil {
		// Can't happen: FindSpawn only returns empty cells.
		e.log.Log(eventlog.Rejected, id, err.Error())
		conn.Close()
		return
	}

	p := &Player{
		ID:           id,
		Addr:         addr,
		Coords:       coords,
		Radius:       e.cfg.Radius,
		HP:           e.cfg.HP,
		WeaponRange:  e.cfg.WeaponRange,
		WeaponDamage: e.cfg.WeaponDamage,
		conn:         conn,
	}
	e.clients[id] = p
	e.addrIndex[addr] = id

	var players []protocol.Player
	for _, q := range e.clients {
		if q.ID == id {
			continue
		}
		if world.IsInsideCircle(coords, p.Radius, q.Coords) {
			players = append(players, q.wire())
		}
	}
	visible := e.world.VisibleCells(coords, p.Radius)

	e.sendTo(p, protocol.NewClientCoordsVisibleMap{
		ID:            id,
		Coords:        coords,
		HP:            p.HP,
		Radius:        p.Radius,
		WeaponRange:   p.WeaponRange,
		VisibleCoords: visible,
		Players:       players,
	})

	var movedBuf [16]byte
	movedN, err := protocol.EncodeServerFrame(movedBuf[:], protocol.OtherPlayerMoved{Coords: coords, ID: id})
	if err != nil {
		e.log.Log(eventlog.WriteError, id, err.Error())
		return
	}
	for _, q := range e.clients {
		if q.ID == id {
			continue
		}
		if world.IsInsideCircle(q.Coords, q.Radius, coords) {
			e.writeRaw(q, movedBuf[:movedN])
		}
	}

	e.log.Log(eventlog.Connected, id, addr)
}

// handleDisconnect implements spec 4.D's Disconnect handler.
func (e *engine) handleDisconnect(addr string) {
	id, ok := e.addrIndex[addr]
	if !ok {
		return
	}
	e.removePlayer(id)
	e.log.Log(eventlog.Disconnected, id, addr)
}

// removePlayer clears occupancy and the player table, then broadcasts
// PlayerDisconnected to everyone still connected (spec 4.D step 2: "no
// radius filtering applied here").
func (e *engine) removePlayer(id uint32) {
	p, ok := e.clients[id]
	if !ok {
		return
	}
	e.world.ClearOccupant(p.Coords)
	delete(e.clients, id)
	delete(e.addrIndex, p.Addr)

	var buf [8]byte
	n, err := protocol.EncodeServerFrame(buf[:], protocol.PlayerDisconnected{ID: id})
	if err != nil {
		e.log.Log(eventlog.WriteError, id, err.Error())
	} else {
		for _, q := range e.clients {
			e.writeRaw(q, buf[:n])
		}
	}
	p.mu.Lock()
	if p.conn != nil {
		p.conn.Close()
	}
	p.mu.Unlock()
}

// handleRead decodes one frame and dispatches it (spec 4.D "Read" event).
func (e *engine) handleRead(addr string, data []byte) {
	id, ok := e.addrIndex[addr]
	if !ok {
		return // stale event for a session already removed
	}
	p := e.clients[id]

	pkt, _, err := protocol.DecodeClientFrame(data)
	if err == protocol.ErrWrongDirection {
		e.log.Log(eventlog.WrongDirection, id, "")
		return
	}
	if err != nil {
		e.log.Log(eventlog.DecodeError, id, err.Error())
		return
	}

	switch v := pkt.(type) {
	case protocol.Move:
		e.handleMove(p, v.Direction)
	case protocol.Shoot:
		e.handleShoot(p, v.Direction)
	}
}

func (e *engine) handleError(addr string, err error) {
	id := e.addrIndex[addr]
	e.log.Log(eventlog.ReadError, id, err.Error())
}

// stepSaturating applies one unit step in dir to coords, clamping at zero
// (spec 4.D.1, 9.1 — unsigned Coords, saturating subtraction).
func stepSaturating(coords protocol.Coords, dir protocol.Direction) protocol.Coords {
	dr, dc := dir.Step()
	row := int(coords.Row) + dr
	col := int(coords.Col) + dc
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Coords{Row: uint16(row), Col: uint16(col)}
}

// handleMove implements spec 4.D's Move handler.
func (e *engine) handleMove(p *Player, dir protocol.Direction) {
	old := p.Coords
	next := stepSaturating(old, dir)
	if next == old {
		return // saturated at a map edge: no displacement, silent no-op
	}
	if !e.world.InBounds(next) {
		return
	}
	if occID, occupied := e.world.Occupant(next); occupied && occID != p.ID {
		return
	}
	if err := e.world.MoveOccupant(old, next, p.ID); err != nil {
		return
	}
	p.Coords = next

	var movedBuf [16]byte
	movedN, _ := protocol.EncodeServerFrame(movedBuf[:], protocol.OtherPlayerMoved{Coords: next, ID: p.ID})
	var lostBuf [8]byte
	lostN, _ := protocol.EncodeServerFrame(lostBuf[:], protocol.OtherPlayerMovedOutsideRadius{ID: p.ID})

	var playersInNewDisk []protocol.Player
	for _, q := range e.clients {
		if q.ID == p.ID {
			continue
		}
		newIn := world.IsInsideCircle(q.Coords, q.Radius, next)
		oldIn := world.IsInsideCircle(q.Coords, q.Radius, old)
		switch {
		case newIn:
			e.writeRaw(q, movedBuf[:movedN])
		case oldIn:
			e.writeRaw(q, lostBuf[:lostN])
		}
		if world.IsInsideCircle(next, p.Radius, q.Coords) {
			playersInNewDisk = append(playersInNewDisk, q.wire())
		}
	}

	visible := e.world.VisibleCells(next, p.Radius)
	e.sendTo(p, protocol.NewCoords{Center: next, Coords: visible, Players: playersInNewDisk})
}

// handleShoot implements spec 4.D's Shoot handler.
func (e *engine) handleShoot(p *Player, dir protocol.Direction) {
	dr, dc := dir.Step()
	row := int(p.Coords.Row)
	col := int(p.Coords.Col)

	var target *Player
	for i := 0; i < int(p.WeaponRange); i++ {
		row += dr
		col += dc
		if row < 0 || col < 0 {
			break
		}
		cand := protocol.Coords{Row: uint16(row), Col: uint16(col)}
		if !e.world.InBounds(cand) {
			break
		}
		if occID, ok := e.world.Occupant(cand); ok {
			target = e.clients[occID]
			break
		}
	}
	if target == nil {
		return
	}

	target.HP = saturatingSub(target.HP, p.WeaponDamage)
	if target.HP > 0 {
		e.sendTo(target, protocol.PlayerWasShot{Damage: p.WeaponDamage, Direction: dir})
		return
	}

	e.sendTo(target, protocol.PlayerDied{ByID: p.ID})
	e.removePlayer(target.ID)
	e.log.Log(eventlog.Died, target.ID, "")
}
