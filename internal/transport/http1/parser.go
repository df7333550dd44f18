package http1

import (
	"bytes"
	"strconv"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/headers"
	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/http/proto"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var (
	crlfcrlf = []byte("\r\n\r\n")
	lflf     = []byte("\n\n")
)

// Parser turns a fully buffered request into http.Request. It doesn't keep any state
// between calls, so a single instance may be shared.
//
// The parser never consults Content-Length: everything after the head is the body. Making
// sure the whole body is buffered is the caller's job.
type Parser struct {
	headersCfg config.Headers
}

func NewParser(headersCfg config.Headers) *Parser {
	return &Parser{
		headersCfg: headersCfg,
	}
}

func (p *Parser) Parse(data []byte) (*http.Request, error) {
	head, rest, found := splitHead(data)
	if !found {
		return nil, status.ErrIncompleteInput
	}

	requestLine, head := cutLine(head)
	line, err := parseRequestLine(requestLine)
	if err != nil {
		return nil, err
	}

	hdrs, err := p.parseHeaders(head)
	if err != nil {
		return nil, err
	}

	return http.NewRequest(line, hdrs, body(rest)), nil
}

func parseRequestLine(data []byte) (line http.RequestLine, err error) {
	offset := 0
	for offset < len(data) && isAlnum(data[offset]) {
		offset++
	}

	if offset == 0 {
		return line, status.ErrMalformedRequestLine
	}

	line.Method = method.Parse(uf.B2S(data[:offset]))
	data, found := skipSpaces(data[offset:])
	if !found {
		return line, status.ErrMalformedRequestLine
	}

	sp := bytes.IndexByte(data, ' ')
	if sp == -1 {
		return line, status.ErrMalformedRequestLine
	}

	line.Path = http.NewPath(string(data[:sp]))
	data, found = skipSpaces(data[sp:])
	if !found || !bytes.HasPrefix(data, []byte("HTTP/")) {
		return line, status.ErrMalformedRequestLine
	}

	version := data[len("HTTP/"):]
	if len(version) == 0 {
		return line, status.ErrMalformedRequestLine
	}

	for _, c := range version {
		if !isDigitOrDot(c) {
			return line, status.ErrMalformedRequestLine
		}
	}

	line.Proto = proto.FromBytes(data)

	return line, nil
}

func (p *Parser) parseHeaders(data []byte) (headers.Headers, error) {
	var (
		hdrs    = headers.New()
		lastKey string
		number  int
		line    []byte
	)

	for len(data) > 0 {
		line, data = cutLine(data)
		if len(line) == 0 {
			return nil, status.ErrMalformedHeader
		}

		if isHorizontalSpace(line[0]) {
			if len(lastKey) == 0 {
				return nil, status.ErrMalformedHeader
			}

			if folded := bytes.Trim(line, " \t"); len(folded) > 0 {
				hdrs[lastKey] += " " + string(folded)
			}

			continue
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 || !isToken(line[:colon]) {
			return nil, status.ErrMalformedHeader
		}

		if number++; number > p.headersCfg.MaxNumber {
			return nil, status.ErrMalformedHeader
		}

		lastKey = string(line[:colon])
		hdrs[lastKey] = string(bytes.TrimLeft(line[colon+1:], " \t"))
	}

	return hdrs, nil
}

// body skips a single line ending right after the head. Nothing or only whitespace
// remaining means there is no body at all.
func body(data []byte) []byte {
	switch {
	case bytes.HasPrefix(data, []byte("\r\n")):
		data = data[2:]
	case bytes.HasPrefix(data, []byte("\n")):
		data = data[1:]
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	return data
}

// Expected returns the length of the head plus the declared Content-Length.
func (p *Parser) Expected(data []byte) (total int, known bool) {
	bodyOffset, length, found := ContentLength(data)
	if !found {
		return 0, false
	}

	return bodyOffset + length, true
}

// ContentLength locates the head in data and returns the offset the body starts at
// alongside with the value of the Content-Length header. found is false if the head isn't
// complete or the header is missing or isn't a valid non-negative integer.
func ContentLength(data []byte) (bodyOffset, length int, found bool) {
	head, rest, complete := splitHead(data)
	if !complete {
		return 0, 0, false
	}

	bodyOffset = len(data) - len(rest)
	_, head = cutLine(head)

	for len(head) > 0 {
		var line []byte
		line, head = cutLine(head)

		colon := bytes.IndexByte(line, ':')
		if colon == -1 || !strcomp.EqualFold(uf.B2S(line[:colon]), "Content-Length") {
			continue
		}

		value := bytes.Trim(line[colon+1:], " \t")
		n, err := strconv.Atoi(uf.B2S(value))
		if err != nil || n < 0 {
			return 0, 0, false
		}

		return bodyOffset, n, true
	}

	return 0, 0, false
}

// splitHead cuts data by the first blank line. Bare LF line endings are tolerated, so
// whichever of CRLFCRLF and LFLF comes first, wins.
func splitHead(data []byte) (head, rest []byte, found bool) {
	crlf := bytes.Index(data, crlfcrlf)
	lf := bytes.Index(data, lflf)

	switch {
	case crlf != -1 && (lf == -1 || crlf < lf):
		return data[:crlf], data[crlf+len(crlfcrlf):], true
	case lf != -1:
		return data[:lf], data[lf+len(lflf):], true
	default:
		return nil, nil, false
	}
}

// cutLine returns the first line without its line ending and everything after it.
func cutLine(data []byte) (line, rest []byte) {
	lf := bytes.IndexByte(data, '\n')
	if lf == -1 {
		line, rest = data, nil
	} else {
		line, rest = data[:lf], data[lf+1:]
	}

	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, rest
}

func skipSpaces(data []byte) ([]byte, bool) {
	offset := 0
	for offset < len(data) && data[offset] == ' ' {
		offset++
	}

	return data[offset:], offset > 0
}
