package http

import (
	"github.com/indigo-web/minihttp/http/headers"
	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/http/proto"
	"github.com/indigo-web/utils/strcomp"
)

type RequestLine struct {
	Method method.Method
	Path   Path
	Proto  proto.Proto
}

// Request represents an HTTP request. It is built once per connection by the parser and
// is read-only afterwards: handlers must copy the body before retaining it, as it may
// point into the connection's read buffer.
type Request struct {
	RequestLine
	// Headers holds header names exactly as received.
	Headers headers.Headers
	// Body is nil if the request carried no payload.
	Body []byte
}

func NewRequest(line RequestLine, hdrs headers.Headers, body []byte) *Request {
	if hdrs == nil {
		hdrs = headers.New()
	}

	return &Request{
		RequestLine: line,
		Headers:     hdrs,
		Body:        body,
	}
}

// HasBody reports whether any payload followed the head.
func (r *Request) HasBody() bool {
	return r.Body != nil
}

// AcceptsEncoding reports whether the coding token is listed in the Accept-Encoding header.
// Quality values aren't taken into account.
func (r *Request) AcceptsEncoding(token string) bool {
	for _, tok := range r.Headers.Tokens("Accept-Encoding") {
		if strcomp.EqualFold(tok, token) {
			return true
		}
	}

	return false
}
