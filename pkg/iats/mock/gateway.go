// Package mock provides an in-memory iATS gateway for tests and local runs.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/tournevent/iats/pkg/iats"
)

// BadCredentials is the fault text the gateway answers with for a wrong
// agent code or password.
const BadCredentials = "Bad Credentials"

// Gateway is a scripted iats.Transport. The zero value answers every call
// with a successful canned response.
type Gateway struct {
	// AgentCode and Password, when Password is set, are the only accepted
	// credentials; anything else is answered with a BadCredentials fault.
	AgentCode string
	Password  string

	// Responses overrides the canned IATSRESPONSE content per operation
	// (e.g. "ProcessCreditCard").
	Responses map[string]iats.Node

	// Fault, when set, is returned for every call.
	Fault *iats.Fault

	// Latency delays every call, honouring context cancellation.
	Latency time.Duration

	// OnCall, when set, replaces the canned behaviour.
	OnCall func(ctx context.Context, call *iats.Call) (*etree.Element, error)

	mu    sync.Mutex
	calls []iats.Call
}

// New creates a gateway with default behaviour.
func New() *Gateway {
	return &Gateway{}
}

// Call implements iats.Transport.
func (g *Gateway) Call(ctx context.Context, call *iats.Call) (*etree.Element, error) {
	g.record(call)

	if g.Latency > 0 {
		select {
		case <-time.After(g.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if g.Fault != nil {
		return nil, g.Fault
	}
	if g.Password != "" && (call.Credentials.AgentCode != g.AgentCode || call.Credentials.Password != g.Password) {
		return nil, &iats.Fault{Code: "soap:Server", String: BadCredentials}
	}
	if g.OnCall != nil {
		return g.OnCall(ctx, call)
	}

	name := strings.TrimSuffix(call.Operation, "V1")
	if node, ok := g.Responses[name]; ok {
		return Response(call.Operation, node), nil
	}
	return Response(call.Operation, defaultResponse(name, call)), nil
}

// Calls returns a copy of the calls received so far.
func (g *Gateway) Calls() []iats.Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]iats.Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// CallCount returns the number of calls received so far.
func (g *Gateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *Gateway) record(call *iats.Call) {
	c := *call
	c.Parameters = call.Parameters.Clone()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, c)
}

// Response wraps content the way the gateway does:
// <{op}Response><{op}Result><IATSRESPONSE>content</IATSRESPONSE></{op}Result></{op}Response>.
func Response(operation string, content iats.Node) *etree.Element {
	resp := etree.NewElement(operation + "Response")
	resp.CreateAttr("xmlns", "https://www.iatspayments.com/NetGate/")
	result := resp.CreateElement(operation + "Result")
	result.AddChild(content.Element("IATSRESPONSE"))
	return resp
}

// Approved is a successful transaction response.
func Approved(transactionID string) iats.Node {
	return iats.Node{
		"STATUS": iats.Leaf("Success"),
		"ERRORS": iats.Leaf(""),
		"PROCESSRESULT": iats.Node{
			"AUTHORIZATIONRESULT": iats.Leaf("OK: 678594:"),
			"CUSTOMERCODE":        iats.Leaf(""),
			"TRANSACTIONID":       iats.Leaf(transactionID),
		},
	}
}

// Rejected is a transaction response declined with the given authorization
// result, e.g. "REJECT: 5".
func Rejected(authorization string) iats.Node {
	return iats.Node{
		"STATUS": iats.Leaf("Success"),
		"ERRORS": iats.Leaf(""),
		"PROCESSRESULT": iats.Node{
			"AUTHORIZATIONRESULT": iats.Leaf(authorization),
			"CUSTOMERCODE":        iats.Leaf(""),
			"TRANSACTIONID":       iats.Leaf(""),
		},
	}
}

// Failed is a response the gateway marks as a failure.
func Failed(errors string) iats.Node {
	return iats.Node{
		"STATUS": iats.Leaf("Failure"),
		"ERRORS": iats.Leaf(errors),
	}
}

func defaultResponse(name string, call *iats.Call) iats.Node {
	switch {
	case strings.Contains(call.Endpoint.Path, "ReportLink"):
		return iats.Node{
			"STATUS": iats.Leaf("Success"),
			"ERRORS": iats.Leaf(""),
			"JOURNALREPORT": iats.Node{
				"TN": iats.Node{
					"TNID": iats.Leaf(newTransactionID()),
					"AGT":  iats.Leaf(call.Credentials.AgentCode),
					"INV":  iats.Leaf("00000001"),
					"DTM":  iats.Leaf(call.Parameters.Text("date")),
					"AMT":  iats.Leaf("2.00"),
					"RST":  iats.Leaf("OK: 678594:"),
				},
			},
		}
	case name == "GetCustomerCodeDetail":
		return iats.Node{
			"STATUS": iats.Leaf("Success"),
			"ERRORS": iats.Leaf(""),
			"CUSTOMERS": iats.Node{
				"CST": iats.Node{
					"CSTC": iats.Leaf(call.Parameters.Text("customerCode")),
					"FN":   iats.Leaf("Test"),
					"LN":   iats.Leaf("Account"),
					"AC1":  iats.Leaf("1234 Any Street"),
					"CTY":  iats.Leaf("Schenectady"),
					"ST":   iats.Leaf("NY"),
					"ZC":   iats.Leaf("12345"),
				},
			},
		}
	default:
		return Approved(newTransactionID())
	}
}

func newTransactionID() string {
	return "A" + strings.ToUpper(uuid.NewString()[:8])
}

var _ iats.Transport = (*Gateway)(nil)
