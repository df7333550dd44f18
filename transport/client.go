package transport

import (
	"net"
	"time"

	"github.com/indigo-web/minihttp/internal/timer"
)

type Client interface {
	Read() ([]byte, error)
	Write([]byte) error
	Remote() net.Addr
	Close() error
}

type client struct {
	conn    net.Conn
	buff    []byte
	timeout time.Duration
}

// NewClient wraps the connection. Every read fills the buff, so its size limits how many
// bytes a single Read may return. A zero timeout disables read deadlines.
func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned
// slice is valid only until the next Read. If any data was read, the error (if any) is
// postponed until the next call.
func (c *client) Read() ([]byte, error) {
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(timer.Deadline(c.timeout)); err != nil {
			return nil, err
		}
	}

	n, err := c.conn.Read(c.buff)
	if n > 0 {
		return c.buff[:n], nil
	}

	return nil, err
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) error {
	_, err := c.conn.Write(b)
	return err
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
