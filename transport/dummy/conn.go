package dummy

import (
	"io"
	"net"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a fake net.Conn. Reads return the pieces it was initialised with one by one,
// followed by io.EOF. Written data is journaled unless the conn is a Nop one.
type Conn struct {
	Data         []byte
	ReadDeadline time.Time
	reads        [][]byte
	closed       bool
	nop          bool
}

func NewConn(reads ...[]byte) *Conn {
	return &Conn{
		reads: reads,
	}
}

func (c *Conn) Read(b []byte) (n int, err error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	if len(c.reads) == 0 {
		return 0, io.EOF
	}

	n = copy(b, c.reads[0])
	if n < len(c.reads[0]) {
		c.reads[0] = c.reads[0][n:]
	} else {
		c.reads = c.reads[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.closed {
		return 0, net.ErrClosed
	}

	if !c.nop {
		c.Data = append(c.Data, b...)
	}

	return len(b), nil
}

func (c *Conn) Close() error {
	c.closed = true
	return nil
}

func (c *Conn) Closed() bool {
	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4221}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Conn) SetDeadline(t time.Time) error {
	return c.SetReadDeadline(t)
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	c.ReadDeadline = t
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

func (c *Conn) Nop() *Conn {
	c.nop = true
	return c
}
