package minihttp

import (
	"context"
	"net"
	"sync"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http/serve"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// App binds the listener and serves connections until stopped.
type App struct {
	cfg        *config.Config
	router     router.Router
	logger     zerolog.Logger
	tcp        *transport.TCP
	supervisor *transport.Supervisor
	hooks      hooks
	mu         sync.Mutex
	stopped    bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// New returns a new App instance. A nil cfg means config.Default().
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	return &App{
		cfg:        cfg,
		logger:     zerolog.Nop(),
		supervisor: transport.NewSupervisor(),
	}
}

// Logger replaces the logger, which is disabled by default.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// Router replaces the router. By default, router.New(cfg.Files.Directory) is used.
func (a *App) Router(r router.Router) *App {
	a.router = r
	return a
}

// NotifyOnStart calls the callback at the moment the listener is bound, right before the
// accept loop starts. Addr is already valid at this point.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback once the listener is closed and all the connections
// are served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve binds the configured address and blocks until Stop is called or the listener
// fails.
func (a *App) Serve() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	r := a.router
	if r == nil {
		r = router.New(a.cfg.Files.Directory)
	}

	a.tcp = transport.NewTCP(a.logger)
	err := a.supervisor.Add(a.cfg.NET.Addr, a.tcp, func(conn net.Conn) {
		serve.HTTP1(a.cfg, conn, r, a.logger)
	})
	if err != nil {
		return errors.Wrap(err, "minihttp")
	}

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		a.tcp.Close()
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel, a.done = cancel, make(chan struct{})
	done := a.done
	a.mu.Unlock()

	defer close(done)
	defer cancel()

	a.logger.Info().
		Stringer("addr", a.tcp.Addr()).
		Str("directory", a.cfg.Files.Directory).
		Msg("listening")
	callIfNotNil(a.hooks.OnStart)

	err = a.supervisor.Run(ctx, a.cfg.NET)
	callIfNotNil(a.hooks.OnStop)
	a.logger.Info().Msg("stopped")

	return err
}

// Addr returns the address the App is listening on, or nil if it isn't bound yet.
func (a *App) Addr() net.Addr {
	if a.tcp == nil {
		return nil
	}

	return a.tcp.Addr()
}

// Stop stops accepting new connections and blocks until Serve returns, that is, until all
// the pending connections are served. Calling it before Serve makes the upcoming Serve
// return immediately.
func (a *App) Stop() {
	a.mu.Lock()
	a.stopped = true
	cancel, done := a.cancel, a.done
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
