package server

import (
	"github.com/jtbits/baboogee/pkg/eventlog"
	"github.com/jtbits/baboogee/pkg/protocol"
)

// sendTo serializes pkt into the engine's scratch buffer and writes it to p,
// grounded on the teacher's broadcastChat idiom (build one packet, write it
// to one or many recipients) but using the schema-bound codec instead of an
// opaque MarshalPacket builder.
func (e *engine) sendTo(p *Player, pkt protocol.ServerPacket) {
	n, err := protocol.EncodeServerFrame(e.buf, pkt)
	if err != nil {
		e.log.Log(eventlog.WriteError, p.ID, err.Error())
		return
	}
	e.writeRaw(p, e.buf[:n])
}

// writeRaw writes an already-encoded frame to p, guarded by p.mu so a write
// from the engine goroutine never races a reader goroutine's conn teardown
// (spec 9 "cyclic ownership", mirroring the teacher's Player.mu around
// Conn access).
func (e *engine) writeRaw(p *Player, frame []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return
	}
	if _, err := p.conn.Write(frame); err != nil {
		e.log.Log(eventlog.WriteError, p.ID, err.Error())
	}
}
