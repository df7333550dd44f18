package http1

import (
	"strconv"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/proto"
	"github.com/indigo-web/minihttp/internal/transport"
	"github.com/indigo-web/utils/strcomp"
)

const contentLength = "Content-Length: "

var _ transport.Serializer = new(Serializer)

// Serializer renders responses into the internal buffer, which is reused between calls.
// It is therefore not safe for concurrent use.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{
		buff: buff[:0],
	}
}

// Render returns the wire form of the response. The returned slice is valid until the
// next call.
func (s *Serializer) Render(response *http.Response) []byte {
	s.buff = s.buff[:0]
	s.renderResponseLine(response)
	s.renderHeaders(response)
	s.renderContentLength(len(response.Body()))
	s.crlf()
	s.buff = append(s.buff, response.Body()...)

	return s.buff
}

// Write renders the response and writes it at once.
func (s *Serializer) Write(response *http.Response, writer transport.Writer) error {
	return writer.Write(s.Render(response))
}

func (s *Serializer) renderResponseLine(response *http.Response) {
	s.buff = append(s.buff, proto.HTTP11.String()...)
	s.sp()
	s.buff = strconv.AppendUint(s.buff, uint64(response.StatusCode()), 10)
	s.sp()
	s.buff = append(s.buff, string(response.Status())...)
	s.crlf()
}

// renderHeaders writes headers in sorted order. Content-Length is always computed, so
// the one passed by the user (if any) is dropped.
func (s *Serializer) renderHeaders(response *http.Response) {
	hdrs := response.Headers()

	for _, key := range hdrs.Keys() {
		if strcomp.EqualFold(key, "Content-Length") {
			continue
		}

		s.buff = append(s.buff, key...)
		s.colonsp()
		s.buff = append(s.buff, hdrs[key]...)
		s.crlf()
	}
}

func (s *Serializer) renderContentLength(value int) {
	s.buff = append(s.buff, contentLength...)
	s.buff = strconv.AppendInt(s.buff, int64(value), 10)
	s.crlf()
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) colonsp() {
	s.buff = append(s.buff, ':', ' ')
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}

// Serialize renders the response with a fresh serializer, so the result is owned by
// the caller.
func Serialize(response *http.Response) []byte {
	return NewSerializer(nil).Render(response)
}
