package router

import (
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/method"
)

var _ Router = new(Default)

// Default dispatches on the method first and on the route second. Only the first path
// segment takes part in matching; the rest is the route-data.
type Default struct {
	directory string
	root      Handler
	echo      Handler
	userAgent Handler
	getFile   Handler
	postFile  Handler
	notFound  Handler
}

// New returns the router. The dir is the base directory for /files; an empty dir
// disables file serving.
func New(dir string) *Default {
	return &Default{
		directory: dir,
		root:      PathDefaultHandler{},
		echo:      NewEchoHandler(),
		userAgent: UserAgentHandler{},
		getFile:   GetFileHandler{},
		postFile:  PostFileHandler{},
		notFound:  NotFoundHandler{},
	}
}

// Directory returns the base directory the router serves files from.
func (d *Default) Directory() string {
	return d.directory
}

func (d *Default) OnRequest(request *http.Request) *http.Response {
	handler, ctx := d.lookup(request)

	return handler.Handle(request, ctx)
}

func (d *Default) lookup(request *http.Request) (Handler, Context) {
	route := request.Path.Route()

	switch request.Method {
	case method.GET:
		switch route {
		case "/":
			return d.root, Unit()
		case "/echo":
			return d.echo, Unit()
		case "/user-agent":
			return d.userAgent, Unit()
		case "/files":
			return d.getFile, Directory(d.directory)
		}
	case method.POST:
		if route == "/files" {
			return d.postFile, Directory(d.directory)
		}
	}

	return d.notFound, Unit()
}
