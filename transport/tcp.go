package transport

import (
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/indigo-web/minihttp/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var _ Transport = new(TCP)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections and serves each of them in its own goroutine. Connections are
// independent from each other: a failing one affects nobody else.
type TCP struct {
	l      listener
	wg     *sync.WaitGroup
	stop   *atomic.Bool
	logger zerolog.Logger
}

func NewTCP(logger zerolog.Logger) *TCP {
	return &TCP{
		wg:     new(sync.WaitGroup),
		stop:   new(atomic.Bool),
		logger: logger,
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) error {
	l, err := bindTCP(addr)
	if err != nil {
		return errors.Wrapf(err, "bind %s", addr)
	}

	t.l = l
	return nil
}

// Addr returns the address the listener is bound to. Useful when binding to the port 0.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Listen runs the accept loop until Stop is called or the listener is closed. The cb is
// called for every accepted connection; the connection is closed right after cb returns.
// Failed accepts are logged and don't stop the loop.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	var sem chan struct{}
	if cfg.MaxConnections > 0 {
		sem = make(chan struct{}, cfg.MaxConnections)
	}

	for !t.stop.Load() {
		if sem != nil {
			// connections above the limit are left waiting in the backlog
			sem <- struct{}{}
		}

		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			release(sem)
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return errors.Wrap(err, "set accept deadline")
		}

		conn, err := t.l.Accept()
		if err != nil {
			release(sem)

			switch {
			case errors.Is(err, os.ErrDeadlineExceeded):
			case errors.Is(err, net.ErrClosed):
				return nil
			default:
				t.logger.Warn().Err(err).Msg("failed to accept a connection")
			}

			continue
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer t.wg.Done()
			defer release(sem)

			cb(conn)
			_ = conn.Close()
		}(conn)
	}

	return nil
}

func release(sem chan struct{}) {
	if sem != nil {
		<-sem
	}
}

// Stop makes the accept loop exit on its next iteration, which happens at most
// AcceptLoopInterruptPeriod later.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}

// Wait blocks until all the connections are served.
func (t *TCP) Wait() {
	t.wg.Wait()
}
