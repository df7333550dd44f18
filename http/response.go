package http

import (
	"github.com/indigo-web/minihttp/http/headers"
	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/utils/uf"
)

// DefaultContentType is used whenever a response is constructed without headers.
const DefaultContentType = mime.HTML

// Response is constructed once by a handler, serialized once and dropped.
type Response struct {
	code    status.Code
	headers headers.Headers
	body    []byte
}

// NewResponse returns a response with the given code. A nil hdrs is replaced by the
// default {"Content-Type": "text/html"}; a nil body means no body at all.
func NewResponse(code status.Code, hdrs headers.Headers, body []byte) *Response {
	if hdrs == nil {
		hdrs = headers.New().Set("Content-Type", DefaultContentType)
	}

	return &Response{
		code:    code,
		headers: hdrs,
		body:    body,
	}
}

// Code sets the response code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Header sets the header, overwriting the value previously set under exactly the same name.
func (r *Response) Header(key, value string) *Response {
	r.headers.Set(key, value)
	return r
}

// ContentType is a shorthand for setting the Content-Type header.
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header("Content-Type", value)
}

// String sets the response's body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to the passed slice WITHOUT COPYING.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

func (r *Response) StatusCode() status.Code {
	return r.code
}

func (r *Response) Status() status.Status {
	return status.Text(r.code)
}

func (r *Response) Headers() headers.Headers {
	return r.headers
}

// Body returns nil if the response has no body.
func (r *Response) Body() []byte {
	return r.body
}
