package http

import "strings"

// Path is a request URI split for single-level routing: the first segment is the route,
// everything after the second slash is opaque route data. Deeper segments are never
// parsed further, so "/files/a/b" routes to "/files" carrying "a/b".
type Path struct {
	route string
	data  string
}

// NewPath splits the raw path on '/' into at most three parts. Missing parts are empty.
// Nothing is validated, decoded or normalized.
func NewPath(raw string) Path {
	// the first part is whatever precedes the leading slash and is discarded
	_, rest, _ := strings.Cut(raw, "/")
	route, data, _ := strings.Cut(rest, "/")

	return Path{
		route: route,
		data:  data,
	}
}

// Route returns the route segment with a leading slash. The root path yields "/".
func (p Path) Route() string {
	return "/" + p.route
}

// Data returns the route data as is, may contain slashes.
func (p Path) Data() string {
	return p.data
}

func (p Path) String() string {
	if len(p.data) == 0 {
		return p.Route()
	}

	return p.Route() + "/" + p.data
}
