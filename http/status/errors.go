package status

// ErrorKind classifies protocol-level failures. All of them are terminal for the
// connection they happened on.
type ErrorKind uint8

const (
	// IncompleteInput means the head/body separator was never found.
	IncompleteInput ErrorKind = iota + 1
	MalformedRequestLine
	MalformedHeader
)

func (k ErrorKind) String() string {
	switch k {
	case IncompleteInput:
		return "incomplete input"
	case MalformedRequestLine:
		return "malformed request line"
	case MalformedHeader:
		return "malformed header"
	default:
		return "unknown parse error"
	}
}

type ParseError struct {
	Kind    ErrorKind
	Message string
}

func NewParseError(kind ErrorKind, message string) error {
	return &ParseError{
		Kind:    kind,
		Message: message,
	}
}

func (p *ParseError) Error() string {
	return p.Message
}

// Is makes errors.Is match any ParseError of the same kind, so detailed errors produced
// by the parser compare equal to the sentinels below.
func (p *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == p.Kind
}

var (
	ErrIncompleteInput      = NewParseError(IncompleteInput, "no blank line terminating the head")
	ErrMalformedRequestLine = NewParseError(MalformedRequestLine, "malformed request line")
	ErrMalformedHeader      = NewParseError(MalformedHeader, "malformed header")
)
