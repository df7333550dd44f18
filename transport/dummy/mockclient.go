package dummy

import (
	"errors"
	"io"
	"net"

	"github.com/indigo-web/minihttp/transport"
)

var _ transport.Client = new(Client)

// Client returns the pieces it was initialised with one by one, then io.EOF, unless set
// to loop the reads. It also tracks all the written data, making it thereby a universal
// mock suitable for most of the tests.
type Client struct {
	closed     bool
	loop       bool
	journaling bool
	pointer    int
	written    []byte
	data       [][]byte
	writeErr   error
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		data:       data,
		journaling: true,
	}
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if c.pointer >= len(c.data) {
		if !c.loop || len(c.data) == 0 {
			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Write(p []byte) error {
	if c.writeErr != nil {
		return c.writeErr
	}

	if c.journaling {
		c.written = append(c.written, p...)
	}

	return nil
}

func (*Client) Remote() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

func (c *Client) Closed() bool {
	return c.closed
}

// LoopReads makes the client start over after the last piece instead of returning io.EOF.
func (c *Client) LoopReads() *Client {
	c.loop = true
	return c
}

// FailWrites makes every write fail.
func (c *Client) FailWrites() *Client {
	c.writeErr = errors.New("mock client: write failed")
	return c
}

func (c *Client) Journaling(flag bool) *Client {
	c.journaling = flag
	return c
}

func (c *Client) Written() string {
	if !c.journaling {
		panic("mock client: cannot access written data: journaling is disabled!")
	}

	return string(c.written)
}
