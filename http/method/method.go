package method

// Method is a request method. Only GET and POST are routable; every other token
// maps to Unknown.
type Method uint8

const (
	Unknown Method = iota
	GET
	POST

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods.
	Count = iota - 1
)

// List contains all the known methods, Unknown excluded.
var List = []Method{GET, POST}

func (m Method) String() string {
	switch m {
	case GET:
		return "GET"
	case POST:
		return "POST"
	default:
		return "Unknown"
	}
}

// Parse never fails: unrecognized tokens result in Unknown, leaving the decision about
// what to do with them to the router.
func Parse(str string) Method {
	switch len(str) {
	case 3:
		if str == "GET" {
			return GET
		}
	case 4:
		if str == "POST" {
			return POST
		}
	}

	return Unknown
}
