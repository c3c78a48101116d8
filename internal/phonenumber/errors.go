package phonenumber

import "errors"

// ErrNoExampleNumber is returned when a region, type or global network has no
// example number.
var ErrNoExampleNumber = errors.New("phonenumber: no example number")

// ParseError is returned by Parse. It always carries exactly one Kind.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func newParseError(kind ParseErrorKind, message string) *ParseError {
	return &ParseError{Kind: kind, Message: message}
}

// ParseErrorKindOf extracts the kind of a parse error anywhere in err's chain.
func ParseErrorKindOf(err error) (ParseErrorKind, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
