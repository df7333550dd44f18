package codec

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var _ Codec = new(GZIP)

// GZIP compresses bodies with gzip. Writers are pooled, so a single instance may be
// shared among all the connections.
type GZIP struct {
	writers sync.Pool
}

func NewGZIP() *GZIP {
	return &GZIP{
		writers: sync.Pool{
			New: func() any {
				return gzip.NewWriter(nil)
			},
		},
	}
}

func (*GZIP) Token() string {
	return "gzip"
}

func (g *GZIP) Compress(body []byte) ([]byte, error) {
	buff := bytes.NewBuffer(make([]byte, 0, len(body)/2+32))
	writer := g.writers.Get().(*gzip.Writer)
	defer g.writers.Put(writer)
	writer.Reset(buff)

	if _, err := writer.Write(body); err != nil {
		return nil, errors.Wrap(err, "gzip: write")
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "gzip: close")
	}

	return buff.Bytes(), nil
}
