package construct

import (
	"net"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/transport/http1"
	"github.com/indigo-web/minihttp/transport"
)

// respBuffSize is the initial capacity of the serializer's buffer. It grows on demand.
const respBuffSize = 1024

func Client(cfg config.NET, conn net.Conn) transport.Client {
	readBuff := make([]byte, cfg.ReadBufferSize)

	return transport.NewClient(conn, cfg.ReadTimeout, readBuff)
}

func Transport(cfg *config.Config) *http1.Transport {
	return http1.New(cfg.Headers, make([]byte, 0, respBuffSize))
}
