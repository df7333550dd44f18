package router

import (
	"github.com/indigo-web/minihttp/http"
)

// Router maps a request to its response. Implementations must be safe for concurrent
// use, as a single instance serves all the connections. A nil response is replaced by
// the DefaultHandler's one.
type Router interface {
	OnRequest(request *http.Request) *http.Response
}

// Context is the resource a handler is given alongside with the request.
type Context struct {
	directory string
	isDir     bool
}

// Unit is the empty context.
func Unit() Context {
	return Context{}
}

// Directory is the context of handlers serving files. The dir is the base directory.
func Directory(dir string) Context {
	return Context{
		directory: dir,
		isDir:     true,
	}
}

// Dir returns the base directory, if any. An empty path counts as none.
func (c Context) Dir() (string, bool) {
	return c.directory, c.isDir && len(c.directory) > 0
}

// Handler builds a response to the request. The request must not be mutated.
type Handler interface {
	Handle(request *http.Request, ctx Context) *http.Response
}

// HandlerFunc lets ordinary functions act as handlers.
type HandlerFunc func(request *http.Request, ctx Context) *http.Response

func (h HandlerFunc) Handle(request *http.Request, ctx Context) *http.Response {
	return h(request, ctx)
}
