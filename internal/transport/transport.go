package transport

import (
	"github.com/indigo-web/minihttp/http"
)

// Parser turns a buffered request into its structured form. The whole request must be
// already buffered: there is no streaming and no resumption after an error.
type Parser interface {
	Parse(b []byte) (*http.Request, error)
	// Expected returns the total length of the request as declared by its head. known is
	// false if the head is incomplete or declares no length.
	Expected(b []byte) (total int, known bool)
}

type Writer interface {
	Write([]byte) error
}

// Serializer converts a response into bytes and writes it
type Serializer interface {
	Write(response *http.Response, writer Writer) error
}

// Transport is a general pair of a parser and a serializer. Usually consists of both
// belonging to a same protocol major version
type Transport interface {
	Parser
	Serializer
}
