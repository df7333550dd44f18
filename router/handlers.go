package router

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/codec"
	"github.com/indigo-web/minihttp/http/headers"
	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
)

const (
	defaultBody          = "minihttp is up and running"
	pathDefaultBody      = "Everything is fine, but the route is unknown"
	notFoundBody         = "The requested resource does not exist"
	noUserAgentBody      = "The User-Agent header is missing"
	internalErrorBody    = "The file could not be written"
	defaultFileWritePerm = 0o644
)

var (
	_ Handler = DefaultHandler{}
	_ Handler = PathDefaultHandler{}
	_ Handler = NotFoundHandler{}
	_ Handler = EchoHandler{}
	_ Handler = UserAgentHandler{}
	_ Handler = GetFileHandler{}
	_ Handler = PostFileHandler{}
)

func plainText(code status.Code, body string) *http.Response {
	return http.NewResponse(code, headers.New().Set("Content-Type", mime.Plain), nil).String(body)
}

// DefaultHandler ignores the request and answers with a fixed informational message.
type DefaultHandler struct{}

func (DefaultHandler) Handle(*http.Request, Context) *http.Response {
	return plainText(status.OK, defaultBody)
}

// PathDefaultHandler serves the bare root.
type PathDefaultHandler struct{}

func (PathDefaultHandler) Handle(*http.Request, Context) *http.Response {
	return plainText(status.OK, pathDefaultBody)
}

// NotFoundHandler serves unknown routes and methods.
type NotFoundHandler struct{}

func (NotFoundHandler) Handle(*http.Request, Context) *http.Response {
	return plainText(status.NotFound, notFoundBody)
}

// EchoHandler answers with the route-data. The body is gzipped if the client accepts it.
type EchoHandler struct {
	// Codecs lists the content codings the echo may be compressed with, in order of
	// preference. Nil means no compression at all.
	Codecs []codec.Codec
}

func NewEchoHandler() EchoHandler {
	return EchoHandler{
		Codecs: []codec.Codec{codec.NewGZIP()},
	}
}

func (e EchoHandler) Handle(request *http.Request, _ Context) *http.Response {
	response := plainText(status.OK, request.Path.Data())

	c, found := codec.Choose(request.Headers.Tokens("Accept-Encoding"), e.Codecs...)
	if !found {
		return response
	}

	compressed, err := c.Compress(response.Body())
	if err != nil {
		// fall back to the identity coding
		return response
	}

	return response.
		Header("Content-Encoding", c.Token()).
		Bytes(compressed)
}

// UserAgentHandler answers with the User-Agent header value. The header name is matched
// case-insensitively.
type UserAgentHandler struct{}

func (UserAgentHandler) Handle(request *http.Request, _ Context) *http.Response {
	userAgent, found := request.Headers.Lookup("User-Agent")
	if !found {
		return plainText(status.BadRequest, noUserAgentBody)
	}

	return plainText(status.OK, strings.TrimSpace(userAgent))
}

// GetFileHandler serves the file named by the route-data from the context's directory.
// Any failure results in the not-found response.
type GetFileHandler struct{}

func (GetFileHandler) Handle(request *http.Request, ctx Context) *http.Response {
	path, ok := resolve(ctx, request.Path.Data())
	if !ok {
		return NotFoundHandler{}.Handle(request, ctx)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return NotFoundHandler{}.Handle(request, ctx)
	}

	return http.NewResponse(status.OK, nil, content).ContentType(mime.OctetStream)
}

// PostFileHandler stores the request body under the name in route-data, overwriting an
// existing file. A request without body creates an empty file.
type PostFileHandler struct{}

func (PostFileHandler) Handle(request *http.Request, ctx Context) *http.Response {
	path, ok := resolve(ctx, request.Path.Data())
	if !ok {
		return NotFoundHandler{}.Handle(request, ctx)
	}

	if err := os.WriteFile(path, request.Body, defaultFileWritePerm); err != nil {
		return plainText(status.InternalServerError, internalErrorBody)
	}

	return http.NewResponse(status.Created, nil, nil).ContentType(mime.OctetStream)
}

// resolve joins the name with the base directory. Names that are empty, absolute or
// would escape the directory are refused.
func resolve(ctx Context, name string) (string, bool) {
	dir, ok := ctx.Dir()
	if !ok || len(name) == 0 || !filepath.IsLocal(name) {
		return "", false
	}

	return filepath.Join(dir, name), true
}
