package client

type Kind int

const (
	// KindTransport is a failure to build, send or read the HTTP request.
	KindTransport Kind = iota
	// KindHTTP is a non-2xx HTTP status.
	KindHTTP
	// KindGraphQL is an errors array in the response.
	KindGraphQL
	// KindDecode is a body that isn't JSON, or is missing the expected fields.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindGraphQL:
		return "graphql"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Error is returned by every Client method that fails. The message is suitable
// for showing to a user.
type Error struct {
	Kind       Kind
	Op         string
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newTransportError(op string, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Op:      op,
		Message: err.Error(),
		Err:     err,
	}
}

func newDecodeError(op, reason string) *Error {
	return &Error{
		Kind:    KindDecode,
		Op:      op,
		Message: "failed to decode response: " + reason,
	}
}
