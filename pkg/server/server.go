// Package server implements the BABOOGEE engine and connection layer: an
// accept loop, one reader goroutine per socket, and a single goroutine that
// owns the authoritative game state (spec 4.D/4.E/5).
package server

import (
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jtbits/baboogee/pkg/eventlog"
)

// readBufSize is the minimum frame buffer size named in spec 4.E.
const readBufSize = 512

// housekeepingInterval mirrors original_source/server's
// recv_timeout(Duration::from_millis(200)) (spec 5): it exists only so the
// engine loop can notice Server.Stop between events, not to drive any tick.
const housekeepingInterval = 200 * time.Millisecond

// Server owns the listener, the engine's event queue, and goroutine
// supervision. The teacher's Server (pkg/server/server.go) mutated a shared
// player map directly behind sync.RWMutex from every connection goroutine;
// here only the engine goroutine touches game state; Server is the outer
// shell that feeds it.
type Server struct {
	cfg      Config
	listener net.Listener

	events chan clientEvent
	stopCh chan struct{}
	group  *errgroup.Group

	eng *engine

	mu        sync.RWMutex // guards liveCount, read outside the engine goroutine
	liveCount int
	closeOnce sync.Once
}

// New builds a Server; the engine's map and rng are constructed eagerly so
// tests can inspect them before Start.
func New(cfg Config) *Server {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	log := eventlog.New(nil)
	return &Server{
		cfg:    cfg,
		events: make(chan clientEvent, 256),
		stopCh: make(chan struct{}),
		eng:    newEngine(cfg, rng, log),
	}
}

// Start binds the listener and launches the accept loop and engine
// goroutines. Grounded on the teacher's Start/acceptLoop split, with
// golang.org/x/sync/errgroup supervising goroutines instead of bare `go`
// calls so Stop can wait for clean teardown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.cfg.Address, err)
	}
	s.listener = ln

	g := &errgroup.Group{}
	s.group = g
	g.Go(func() error {
		s.acceptLoop()
		return nil
	})
	g.Go(func() error {
		s.run()
		return nil
	})
	return nil
}

// Stop closes the listener, waits for the accept loop and engine goroutine
// to exit, then closes every connection the engine has registered.
func (s *Server) Stop() {
	s.closeOnce.Do(func() {
		close(s.stopCh)
		if s.listener != nil {
			s.listener.Close()
		}
	})
	if s.group != nil {
		s.group.Wait()
	}
	// The engine goroutine has exited, so its player table is safe to walk.
	for _, p := range s.eng.clients {
		p.mu.Lock()
		if p.conn != nil {
			p.conn.Close()
		}
		p.mu.Unlock()
	}
}

// Addr returns the listener's bound address; valid only after Start.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopCh:
				return
			default:
				continue
			}
		}
		s.addLive(1)
		go s.handleConnection(conn)
	}
}

// handleConnection is the per-socket reader goroutine (spec 4.E "Reader").
// It never decodes; it forwards raw frames to the engine's event channel.
func (s *Server) handleConnection(conn net.Conn) {
	addr := conn.RemoteAddr().String()
	defer s.addLive(-1)

	select {
	case s.events <- clientEvent{kind: evConnect, addr: addr, conn: conn}:
	case <-s.stopCh:
		conn.Close()
		return
	}

	buf := make([]byte, readBufSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			select {
			case s.events <- clientEvent{kind: evError, addr: addr, err: err}:
			case <-s.stopCh:
			}
			select {
			case s.events <- clientEvent{kind: evDisconnect, addr: addr}:
			case <-s.stopCh:
			}
			return
		}
		if n == 0 {
			select {
			case s.events <- clientEvent{kind: evDisconnect, addr: addr}:
			case <-s.stopCh:
			}
			return
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case s.events <- clientEvent{kind: evRead, addr: addr, data: data}:
		case <-s.stopCh:
			return
		}
	}
}

// run is the single engine-consumer goroutine (spec 4.D "Events are
// processed strictly in receive order").
func (s *Server) run() {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()
	for {
		select {
		case ev := <-s.events:
			s.eng.handle(ev)
		case <-ticker.C:
			select {
			case <-s.stopCh:
				return
			default:
			}
		case <-s.stopCh:
			return
		}
	}
}

func (s *Server) addLive(delta int) {
	s.mu.Lock()
	s.liveCount += delta
	s.mu.Unlock()
}

// PlayerCount reports the number of currently connected sessions. Safe to
// call from outside the engine goroutine (spec 5: a small set of fields may
// be read under a lock separate from the engine's exclusive state).
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveCount
}
