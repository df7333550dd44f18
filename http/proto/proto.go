package proto

import "github.com/indigo-web/utils/uf"

type Proto uint8

const (
	Unknown Proto = iota
	HTTP11
)

func (p Proto) String() string {
	if p == HTTP11 {
		return "HTTP/1.1"
	}

	return ""
}

const (
	httpScheme = "HTTP/"
	version11  = "1.1"
)

// FromBytes recognizes the full version token, e.g. "HTTP/1.1". Anything but HTTP/1.1
// results in Unknown.
func FromBytes(raw []byte) Proto {
	if len(raw) <= len(httpScheme) || uf.B2S(raw[:len(httpScheme)]) != httpScheme {
		return Unknown
	}

	return Parse(uf.B2S(raw[len(httpScheme):]))
}

// Parse recognizes the bare version number, e.g. "1.1".
func Parse(version string) Proto {
	if version == version11 {
		return HTTP11
	}

	return Unknown
}
