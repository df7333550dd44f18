package status

import "strconv"

type (
	Code   uint16
	Status string
)

const (
	OK                  Code = 200 // RFC 9110, 15.3.1
	Created             Code = 201 // RFC 9110, 15.3.2
	BadRequest          Code = 400 // RFC 9110, 15.5.1
	NotFound            Code = 404 // RFC 9110, 15.5.5
	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

// Text returns a text for the HTTP status code. The table is short: every
// code outside of it, Created included, renders as "Not Found".
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return "Not Found"
	}
}

func (c Code) String() string {
	return strconv.Itoa(int(c))
}
