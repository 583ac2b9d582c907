package protocol

// ServerPacket is one of the seven messages the engine sends to a client.
// Tag() is the wire ordinal (spec 4.B) fixed at declaration order; it must
// never be reassigned once shipped.
type ServerPacket interface {
	Tag() uint8
	EncodePayload(buf []byte) (int, error)
}

// ClientPacket is one of the two messages a client sends to the engine.
type ClientPacket interface {
	Tag() uint8
	EncodePayload(buf []byte) (int, error)
}

// Server packet ordinals (spec 4.B). Fixed: never reorder.
const (
	TagNewClientCoordsVisibleMap uint8 = iota
	TagNewCoords
	TagOtherPlayerMoved
	TagOtherPlayerMovedOutsideRadius
	TagPlayerDisconnected
	TagPlayerWasShot
	TagPlayerDied
)

// Client packet ordinals (spec 4.B). Fixed: never reorder.
const (
	TagMove uint8 = iota
	TagShoot
)

// frameServer is the top-level Packet variant tag (spec 4.B): 0 = Server,
// 1 = Client. There is no length prefix at this level; the codec's
// per-field sizing determines how many bytes the payload consumes.
const (
	frameServer uint8 = 0
	frameClient uint8 = 1
)

// NewClientCoordsVisibleMap is the initial snapshot sent to a newly
// connected client.
type NewClientCoordsVisibleMap struct {
	ID            uint32
	Coords        Coords
	HP            uint8
	Radius        uint8
	WeaponRange   uint8
	VisibleCoords []MapCell
	Players       []Player
}

func (p NewClientCoordsVisibleMap) Tag() uint8 { return TagNewClientCoordsVisibleMap }

func (p NewClientCoordsVisibleMap) EncodePayload(buf []byte) (int, error) {
	off := 0
	n, err := encodeUint32(buf[off:], p.ID)
	if err != nil {
		return 0, err
	}
	off += n
	n, err = p.Coords.Encode(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	n, err = encodeUint8(buf[off:], p.HP)
	if err != nil {
		return 0, err
	}
	off += n
	n, err = encodeUint8(buf[off:], p.Radius)
	if err != nil {
		return 0, err
	}
	off += n
	n, err = encodeUint8(buf[off:], p.WeaponRange)
	if err != nil {
		return 0, err
	}
	off += n
	n, err = EncodeSequence(buf[off:], p.VisibleCoords, func(b []byte, c MapCell) (int, error) { return c.Encode(b) })
	if err != nil {
		return 0, err
	}
	off += n
	n, err = EncodeSequence(buf[off:], p.Players, func(b []byte, pl Player) (int, error) { return pl.Encode(b) })
	if err != nil {
		return 0, err
	}
	off += n
	return off, nil
}

func decodeNewClientCoordsVisibleMap(buf []byte) (NewClientCoordsVisibleMap, int, error) {
	var p NewClientCoordsVisibleMap
	off := 0
	id, n, err := decodeUint32(buf[off:])
	if err != nil {
		return p, 0, err
	}
	off += n
	coords, n, err := DecodeCoords(buf[off:])
	if err != nil {
		return p, 0, err
	}
	off += n
	hp, n, err := decodeUint8(buf[off:])
	if err != nil {
		return p, 0, err
	}
	off += n
	radius, n, err := decodeUint8(buf[off:])
	if err != nil {
		return p, 0, err
	}
	off += n
	weaponRange, n, err := decodeUint8(buf[off:])
	if err != nil {
		return p, 0, err
	}
	off += n
	visible, n, err := DecodeSequence(buf[off:], DecodeMapCell)
	if err != nil {
		return p, 0, err
	}
	off += n
	players, n, err := DecodeSequence(buf[off:], DecodePlayer)
	if err != nil {
		return p, 0, err
	}
	off += n
	return NewClientCoordsVisibleMap{
		ID:            id,
		Coords:        coords,
		HP:            hp,
		Radius:        radius,
		WeaponRange:   weaponRange,
		VisibleCoords: visible,
		Players:       players,
	}, off, nil
}

// NewCoords is sent to a client after it moved: its new center, newly
// revealed cells, and the peers now inside its radius.
type NewCoords struct {
	Center  Coords
	Coords  []MapCell
	Players []Player
}

func (p NewCoords) Tag() uint8 { return TagNewCoords }

func (p NewCoords) EncodePayload(buf []byte) (int, error) {
	off := 0
	n, err := p.Center.Encode(buf[off:])
	if err != nil {
		return 0, err
	}
	off += n
	n, err = EncodeSequence(buf[off:], p.Coords, func(b []byte, c MapCell) (int, error) { return c.Encode(b) })
	if err != nil {
		return 0, err
	}
	off += n
	n, err = EncodeSequence(buf[off:], p.Players, func(b []byte, pl Player) (int, error) { return pl.Encode(b) })
	if err != nil {
		return 0, err
	}
	off += n
	return off, nil
}

func decodeNewCoords(buf []byte) (NewCoords, int, error) {
	off := 0
	center, n, err := DecodeCoords(buf[off:])
	if err != nil {
		return NewCoords{}, 0, err
	}
	off += n
	cells, n, err := DecodeSequence(buf[off:], DecodeMapCell)
	if err != nil {
		return NewCoords{}, 0, err
	}
	off += n
	players, n, err := DecodeSequence(buf[off:], DecodePlayer)
	if err != nil {
		return NewCoords{}, 0, err
	}
	off += n
	return NewCoords{Center: center, Coords: cells, Players: players}, off, nil
}

// OtherPlayerMoved tells the recipient that a peer inside its radius changed
// position — also reused, deliberately, to announce a peer entering radius
// for the first time (spec 4.D Connect handler step 6, spec 9 "message
// re-use on join").
type OtherPlayerMoved struct {
	Coords Coords
	ID     uint32
}

func (p OtherPlayerMoved) Tag() uint8 { return TagOtherPlayerMoved }

func (p OtherPlayerMoved) EncodePayload(buf []byte) (int, error) {
	n, err := p.Coords.Encode(buf)
	if err != nil {
		return 0, err
	}
	m, err := encodeUint32(buf[n:], p.ID)
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

func decodeOtherPlayerMoved(buf []byte) (OtherPlayerMoved, int, error) {
	coords, n, err := DecodeCoords(buf)
	if err != nil {
		return OtherPlayerMoved{}, 0, err
	}
	id, m, err := decodeUint32(buf[n:])
	if err != nil {
		return OtherPlayerMoved{}, 0, err
	}
	return OtherPlayerMoved{Coords: coords, ID: id}, n + m, nil
}

// OtherPlayerMovedOutsideRadius tells the recipient that a previously
// visible peer left its radius.
type OtherPlayerMovedOutsideRadius struct {
	ID uint32
}

func (p OtherPlayerMovedOutsideRadius) Tag() uint8 { return TagOtherPlayerMovedOutsideRadius }

func (p OtherPlayerMovedOutsideRadius) EncodePayload(buf []byte) (int, error) {
	return encodeUint32(buf, p.ID)
}

func decodeOtherPlayerMovedOutsideRadius(buf []byte) (OtherPlayerMovedOutsideRadius, int, error) {
	id, n, err := decodeUint32(buf)
	if err != nil {
		return OtherPlayerMovedOutsideRadius{}, 0, err
	}
	return OtherPlayerMovedOutsideRadius{ID: id}, n, nil
}

// PlayerDisconnected announces that a peer's session ended.
type PlayerDisconnected struct {
	ID uint32
}

func (p PlayerDisconnected) Tag() uint8 { return TagPlayerDisconnected }

func (p PlayerDisconnected) EncodePayload(buf []byte) (int, error) {
	return encodeUint32(buf, p.ID)
}

func decodePlayerDisconnected(buf []byte) (PlayerDisconnected, int, error) {
	id, n, err := decodeUint32(buf)
	if err != nil {
		return PlayerDisconnected{}, 0, err
	}
	return PlayerDisconnected{ID: id}, n, nil
}

// PlayerWasShot tells the recipient it was just hit.
type PlayerWasShot struct {
	Damage    uint8
	Direction Direction
}

func (p PlayerWasShot) Tag() uint8 { return TagPlayerWasShot }

func (p PlayerWasShot) EncodePayload(buf []byte) (int, error) {
	n, err := encodeUint8(buf, p.Damage)
	if err != nil {
		return 0, err
	}
	m, err := p.Direction.Encode(buf[n:])
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

func decodePlayerWasShot(buf []byte) (PlayerWasShot, int, error) {
	damage, n, err := decodeUint8(buf)
	if err != nil {
		return PlayerWasShot{}, 0, err
	}
	dir, m, err := DecodeDirection(buf[n:])
	if err != nil {
		return PlayerWasShot{}, 0, err
	}
	return PlayerWasShot{Damage: damage, Direction: dir}, n + m, nil
}

// PlayerDied tells the recipient it just died; ByID is the killer's id.
type PlayerDied struct {
	ByID uint32
}

func (p PlayerDied) Tag() uint8 { return TagPlayerDied }

func (p PlayerDied) EncodePayload(buf []byte) (int, error) {
	return encodeUint32(buf, p.ByID)
}

func decodePlayerDied(buf []byte) (PlayerDied, int, error) {
	byID, n, err := decodeUint32(buf)
	if err != nil {
		return PlayerDied{}, 0, err
	}
	return PlayerDied{ByID: byID}, n, nil
}

// Move is a request to step one cell in Direction.
type Move struct {
	Direction Direction
}

func (p Move) Tag() uint8 { return TagMove }

func (p Move) EncodePayload(buf []byte) (int, error) {
	return p.Direction.Encode(buf)
}

func decodeMove(buf []byte) (Move, int, error) {
	dir, n, err := DecodeDirection(buf)
	if err != nil {
		return Move{}, 0, err
	}
	return Move{Direction: dir}, n, nil
}

// Shoot is a request to fire the weapon in Direction.
type Shoot struct {
	Direction Direction
}

func (p Shoot) Tag() uint8 { return TagShoot }

func (p Shoot) EncodePayload(buf []byte) (int, error) {
	return p.Direction.Encode(buf)
}

func decodeShoot(buf []byte) (Shoot, int, error) {
	dir, n, err := DecodeDirection(buf)
	if err != nil {
		return Shoot{}, 0, err
	}
	return Shoot{Direction: dir}, n, nil
}

// EncodeServerFrame writes the top-level Packet::Server tag followed by the
// packet's own ordinal and payload.
func EncodeServerFrame(buf []byte, p ServerPacket) (int, error) {
	n, err := encodeUint8(buf, frameServer)
	if err != nil {
		return 0, err
	}
	off := n
	n, err = encodeUint8(buf[off:], p.Tag())
	if err != nil {
		return 0, err
	}
	off += n
	n, err = p.EncodePayload(buf[off:])
	if err != nil {
		return 0, err
	}
	return off + n, nil
}

// EncodeClientFrame writes the top-level Packet::Client tag followed by the
// packet's own ordinal and payload.
func EncodeClientFrame(buf []byte, p ClientPacket) (int, error) {
	n, err := encodeUint8(buf, frameClient)
	if err != nil {
		return 0, err
	}
	off := n
	n, err = encodeUint8(buf[off:], p.Tag())
	if err != nil {
		return 0, err
	}
	off += n
	n, err = p.EncodePayload(buf[off:])
	if err != nil {
		return 0, err
	}
	return off + n, nil
}

// DecodeClientFrame decodes one ClientPacket from a frame the server
// received. A frame tagged Packet::Server is ErrWrongDirection, not
// ErrInvalid — the engine logs and drops it but the distinction lets a
// caller tell "malformed" from "well-formed but backwards" (spec 7).
func DecodeClientFrame(buf []byte) (ClientPacket, int, error) {
	frameTag, n, err := decodeUint8(buf)
	if err != nil {
		return nil, 0, err
	}
	if frameTag != frameClient {
		if frameTag == frameServer {
			return nil, 0, ErrWrongDirection
		}
		return nil, 0, ErrInvalid
	}
	off := n
	tag, n, err := decodeUint8(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n
	switch tag {
	case TagMove:
		v, m, err := decodeMove(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagShoot:
		v, m, err := decodeShoot(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	default:
		return nil, 0, ErrInvalid
	}
}

// DecodeServerFrame decodes one ServerPacket from a frame the client
// received. A frame tagged Packet::Client is ErrWrongDirection.
func DecodeServerFrame(buf []byte) (ServerPacket, int, error) {
	frameTag, n, err := decodeUint8(buf)
	if err != nil {
		return nil, 0, err
	}
	if frameTag != frameServer {
		if frameTag == frameClient {
			return nil, 0, ErrWrongDirection
		}
		return nil, 0, ErrInvalid
	}
	off := n
	tag, n, err := decodeUint8(buf[off:])
	if err != nil {
		return nil, 0, err
	}
	off += n
	switch tag {
	case TagNewClientCoordsVisibleMap:
		v, m, err := decodeNewClientCoordsVisibleMap(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagNewCoords:
		v, m, err := decodeNewCoords(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagOtherPlayerMoved:
		v, m, err := decodeOtherPlayerMoved(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagOtherPlayerMovedOutsideRadius:
		v, m, err := decodeOtherPlayerMovedOutsideRadius(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagPlayerDisconnected:
		v, m, err := decodePlayerDisconnected(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagPlayerWasShot:
		v, m, err := decodePlayerWasShot(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	case TagPlayerDied:
		v, m, err := decodePlayerDied(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		return v, off + m, nil
	default:
		return nil, 0, ErrInvalid
	}
}
