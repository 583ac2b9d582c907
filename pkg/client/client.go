package client

import (
	"net"

	"github.com/jtbits/baboogee/pkg/protocol"
)

// Client is a thin forwarder over one TCP connection to a BABOOGEE server:
// it sends Move/Shoot requests and decodes whatever ServerPacket comes back.
// Grounded on original_source/client/src/main.rs's shape (dial, poll input,
// apply incoming packets) but built on net.Conn rather than a raw-mode
// terminal crate.
type Client struct {
	conn net.Conn
	buf  []byte
}

// Dial connects to addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, buf: make([]byte, 4096)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// SendMove requests one step in dir.
func (c *Client) SendMove(dir protocol.Direction) error {
	return c.send(protocol.Move{Direction: dir})
}

// SendShoot requests a shot in dir.
func (c *Client) SendShoot(dir protocol.Direction) error {
	return c.send(protocol.Shoot{Direction: dir})
}

func (c *Client) send(pkt protocol.ClientPacket) error {
	buf := make([]byte, 8)
	n, err := protocol.EncodeClientFrame(buf, pkt)
	if err != nil {
		return err
	}
	_, err = c.conn.Write(buf[:n])
	return err
}

// Recv blocks for the next ServerPacket.
func (c *Client) Recv() (protocol.ServerPacket, error) {
	n, err := c.conn.Read(c.buf)
	if err != nil {
		return nil, err
	}
	pkt, _, err := protocol.DecodeServerFrame(c.buf[:n])
	if err != nil {
		return nil, err
	}
	return pkt, nil
}
