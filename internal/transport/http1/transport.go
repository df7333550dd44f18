package http1

import (
	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/transport"
)

var _ transport.Transport = new(Transport)

type Transport struct {
	*Parser
	*Serializer
}

func New(headersCfg config.Headers, respBuff []byte) *Transport {
	return &Transport{
		Parser:     NewParser(headersCfg),
		Serializer: NewSerializer(respBuff),
	}
}
