package iats

import (
	"context"

	"github.com/beevik/etree"
)

// Credentials identify the merchant to the gateway.
type Credentials struct {
	AgentCode string
	Password  string
}

// String masks the password.
func (c Credentials) String() string {
	return c.AgentCode + ":********"
}

// Call is a single request handed to a Transport.
type Call struct {
	Endpoint    Endpoint
	Operation   string
	Credentials Credentials
	Parameters  Parameters
}

// Transport sends a call to the gateway and returns the operation response
// element (the child of the SOAP Body). SOAP faults are returned as *Fault.
type Transport interface {
	Call(ctx context.Context, call *Call) (*etree.Element, error)
}

// Fault is a SOAP fault raised by the gateway.
type Fault struct {
	Code   string
	String string
}

// Error returns the gateway's fault text verbatim.
func (f *Fault) Error() string {
	return f.String
}
