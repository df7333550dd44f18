package transport

import (
	"context"
	"net"

	"github.com/indigo-web/minihttp/config"
)

// Supervisor runs bound transports side by side and shuts all of them down together.
type Supervisor struct {
	bound []binding
}

type binding struct {
	t  Transport
	cb func(conn net.Conn)
}

func NewSupervisor() *Supervisor {
	return new(Supervisor)
}

// Add binds the transport to the addr. If binding fails, everything bound earlier is closed,
// so the supervisor must not be reused.
func (s *Supervisor) Add(addr string, t Transport, cb func(net.Conn)) error {
	if err := t.Bind(addr); err != nil {
		for _, b := range s.bound {
			b.t.Close()
		}

		return err
	}

	s.bound = append(s.bound, binding{t: t, cb: cb})
	return nil
}

// Run blocks until ctx is done or any of the transports exits. In both cases, every
// transport is stopped, its connections are served and its listener is closed. The
// error of the first exited transport is returned.
func (s *Supervisor) Run(ctx context.Context, cfg config.NET) (err error) {
	if len(s.bound) == 0 {
		return nil
	}

	exited := make(chan error, len(s.bound))
	for _, b := range s.bound {
		go func(b binding) {
			exited <- b.t.Listen(cfg, b.cb)
		}(b)
	}

	pending := len(s.bound)

	select {
	case err = <-exited:
		pending--
	case <-ctx.Done():
	}

	for _, b := range s.bound {
		b.t.Stop()
	}

	// accept loops must be over before waiting, otherwise a late connection could
	// still be registered
	for range pending {
		<-exited
	}

	for _, b := range s.bound {
		b.t.Wait()
		b.t.Close()
	}

	return err
}
