package serve

import (
	"net"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/construct"
	"github.com/indigo-web/minihttp/internal/server/http"
	"github.com/indigo-web/minihttp/router"
	"github.com/rs/zerolog"
)

// connIDLength is long enough to tell connections apart in logs.
const connIDLength = 8

// HTTP1 serves a single request over the connection and closes it. Every log record
// produced on behalf of the connection carries its id and the remote address.
func HTTP1(cfg *config.Config, conn net.Conn, r router.Router, logger zerolog.Logger) {
	client := construct.Client(cfg.NET, conn)
	connLogger := logger.With().
		Str("conn", uniuri.NewLen(connIDLength)).
		Stringer("remote", conn.RemoteAddr()).
		Logger()

	server := http.NewServer(r, cfg.Body, connLogger)
	server.Run(client, construct.Transport(cfg))
}
