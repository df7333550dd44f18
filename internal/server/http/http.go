package http

import (
	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/internal/transport"
	"github.com/indigo-web/minihttp/router"
	tcp "github.com/indigo-web/minihttp/transport"
	"github.com/rs/zerolog"
)

// Server serves exactly one request per connection: read, parse, route, write, close.
// Errors are never reported to the client; the connection is just closed.
type Server struct {
	router router.Router
	body   config.Body
	logger zerolog.Logger
}

func NewServer(r router.Router, body config.Body, logger zerolog.Logger) *Server {
	return &Server{
		router: r,
		body:   body,
		logger: logger,
	}
}

func (s *Server) Run(client tcp.Client, trans transport.Transport) {
	s.HandleRequest(client, trans)
	_ = client.Close()
}

// HandleRequest serves a single request. It reports whether a response was written.
func (s *Server) HandleRequest(client tcp.Client, trans transport.Transport) (ok bool) {
	data, err := s.read(client, trans)
	if err != nil {
		s.logger.Debug().Err(err).Msg("failed to read the request")
		return false
	}

	request, err := trans.Parse(data)
	if err != nil {
		s.logger.Debug().Err(err).Int("bytes", len(data)).Msg("malformed request")
		return false
	}

	response := s.onRequest(request)
	if err = trans.Write(response, client); err != nil {
		s.logger.Debug().Err(err).Msg("failed to write the response")
		return false
	}

	s.logger.Info().
		Str("method", request.Method.String()).
		Str("path", request.Path.String()).
		Uint16("code", uint16(response.StatusCode())).
		Int("bytes", len(response.Body())).
		Msg("request served")

	return true
}

// read returns whatever the first read brought. If the head declares a Content-Length
// exceeding that, reading goes on until the body is complete, the limit is hit or the
// client stops sending.
func (s *Server) read(client tcp.Client, trans transport.Transport) ([]byte, error) {
	data, err := client.Read()
	if err != nil {
		return nil, err
	}

	if !s.body.HonorContentLength {
		return data, nil
	}

	total, known := trans.Expected(data)
	if !known {
		return data, nil
	}

	if total > s.body.MaxSize {
		s.logger.Debug().
			Int("declared", total).
			Int("limit", s.body.MaxSize).
			Msg("request exceeds the size limit, truncating")
		total = s.body.MaxSize
	}

	if total <= len(data) {
		return data, nil
	}

	// the client's buffer is overwritten by every read, so the data must be moved out
	buff := make([]byte, len(data), total)
	copy(buff, data)

	for len(buff) < total {
		data, err = client.Read()
		if err != nil {
			s.logger.Debug().Err(err).
				Int("expected", total).
				Int("got", len(buff)).
				Msg("incomplete body")
			break
		}

		buff = append(buff, data[:min(len(data), total-len(buff))]...)
	}

	return buff, nil
}

func (s *Server) onRequest(request *http.Request) *http.Response {
	return notNil(request, s.router.OnRequest(request))
}

func notNil(request *http.Request, response *http.Response) *http.Response {
	if response != nil {
		return response
	}

	return router.DefaultHandler{}.Handle(request, router.Unit())
}
