package dummy

import (
	"io"
	"net"

	"github.com/indigo-web/minihttp/transport"
)

var _ transport.Client = NopClient{}

type NopClient struct{}

func NewNopClient() NopClient {
	return NopClient{}
}

func (NopClient) Read() ([]byte, error) {
	return nil, io.EOF
}

func (NopClient) Write([]byte) error {
	return nil
}

func (NopClient) Remote() net.Addr {
	return nil
}

func (NopClient) Close() error {
	return nil
}
