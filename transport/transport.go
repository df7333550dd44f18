package transport

import (
	"net"

	"github.com/indigo-web/minihttp/config"
)

// Transport is a listener with a lifecycle driven by the Supervisor: Bind once, Listen
// until stopped, then Wait for the connections and Close.
type Transport interface {
	Bind(addr string) error
	// Listen runs the accept loop. The cb is called for every connection, each in
	// its own goroutine.
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	// Addr returns nil until bound.
	Addr() net.Addr
	// Stop makes Listen return soon. It doesn't block.
	Stop()
	Close()
	Wait()
}
