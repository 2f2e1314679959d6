package iats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const (
	soap11Namespace  = "http://schemas.xmlsoap.org/soap/envelope/"
	netGateNamespace = "https://www.iatspayments.com/NetGate/"
)

// SOAPTransport is the production Transport: SOAP 1.1 over HTTP.
type SOAPTransport struct {
	httpClient *http.Client
}

// SOAPTransportConfig holds configuration for the SOAP transport.
type SOAPTransportConfig struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewSOAPTransport creates a SOAP transport. A zero timeout means 30s.
func NewSOAPTransport(cfg SOAPTransportConfig) *SOAPTransport {
	if cfg.HTTPClient != nil {
		return &SOAPTransport{httpClient: cfg.HTTPClient}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &SOAPTransport{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Call posts the operation envelope and returns the operation response
// element.
func (t *SOAPTransport) Call(ctx context.Context, call *Call) (*etree.Element, error) {
	body, err := buildEnvelope(call)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, call.Endpoint.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+netGateNamespace+call.Operation+`"`)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseEnvelope(data, resp.StatusCode)
}

// buildEnvelope renders the operation element, credentials first, then the
// parameters in order.
func buildEnvelope(call *Call) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	env := doc.CreateElement("soap:Envelope")
	env.CreateAttr("xmlns:soap", soap11Namespace)
	body := env.CreateElement("soap:Body")

	op := body.CreateElement(call.Operation)
	op.CreateAttr("xmlns", netGateNamespace)
	op.CreateElement("agentCode").SetText(call.Credentials.AgentCode)
	op.CreateElement("password").SetText(call.Credentials.Password)
	for _, p := range call.Parameters {
		op.CreateElement(p.Name).SetText(FormatValue(p.Value))
	}

	return doc.WriteToBytes()
}

// parseEnvelope returns the first element of the SOAP Body, or the fault it
// carries.
func parseEnvelope(data []byte, statusCode int) (*etree.Element, error) {
	doc := etree.NewDocument()
	readErr := doc.ReadFromBytes(data)

	root := doc.Root()
	if readErr != nil || root == nil || root.Tag != "Envelope" {
		if statusCode != http.StatusOK {
			return nil, httpFault(statusCode, data)
		}
		if readErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, readErr)
		}
		return nil, fmt.Errorf("%w: no SOAP envelope", ErrMalformedResponse)
	}
	body := root.SelectElement("Body")
	if body == nil {
		return nil, fmt.Errorf("%w: no SOAP body", ErrMalformedResponse)
	}

	if fault := body.SelectElement("Fault"); fault != nil {
		f := &Fault{
			Code:   childText(fault, "faultcode"),
			String: childText(fault, "faultstring"),
		}
		if f.String == "" {
			f.String = f.Code
		}
		if f.String == "" {
			f.String = http.StatusText(statusCode)
		}
		return nil, f
	}

	if statusCode != http.StatusOK {
		return nil, httpFault(statusCode, nil)
	}

	children := body.ChildElements()
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: empty SOAP body", ErrMalformedResponse)
	}
	return children[0], nil
}

// httpFault reports a non-200 answer that carries no SOAP fault.
func httpFault(statusCode int, body []byte) *Fault {
	text := strings.TrimSpace(string(body))
	if text == "" || len(text) > 512 {
		text = http.StatusText(statusCode)
	}
	return &Fault{Code: fmt.Sprintf("HTTP_%d", statusCode), String: text}
}

func childText(e *etree.Element, tag string) string {
	if c := e.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

var _ Transport = (*SOAPTransport)(nil)
