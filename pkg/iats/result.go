package iats

// Kind tags the outcome of a gateway call.
type Kind int

const (
	KindSuccess Kind = iota
	KindValidationFailure
	KindAuthorizationRejection
	KindTransportFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindValidationFailure:
		return "validation_failure"
	case KindAuthorizationRejection:
		return "authorization_rejection"
	case KindTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is the classified outcome of a gateway call. Message carries the
// gateway's own text verbatim where there is one; callers branch on Kind.
type Result struct {
	Kind    Kind   `json:"kind"`
	Payload Value  `json:"payload,omitempty"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	cause error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// Err returns the outcome as an *Error, or nil on success.
func (r Result) Err() error {
	if r.Kind == KindSuccess {
		return nil
	}
	return &Error{
		Kind:    r.Kind,
		Code:    r.Code,
		Message: r.Message,
		Cause:   r.cause,
	}
}

func success(payload Value) Result {
	return Result{Kind: KindSuccess, Payload: payload}
}

func validationFailure(message string, payload Value, cause error) Result {
	return Result{Kind: KindValidationFailure, Payload: payload, Message: message, cause: cause}
}

func authorizationRejection(code int, message string, auth string) Result {
	return Result{Kind: KindAuthorizationRejection, Payload: Leaf(auth), Code: code, Message: message}
}

func transportFailure(message string, cause error) Result {
	return Result{Kind: KindTransportFailure, Message: message, cause: cause}
}
