// Package iats is a client for the iATS Payments NetGate SOAP services.
package iats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/tournevent/iats/pkg/iats"

// Config holds client configuration.
type Config struct {
	AgentCode string
	Password  string
	Region    Region
	Timeout   time.Duration
}

// Recorder receives per-call measurements.
type Recorder interface {
	RecordRequest(operation, family, outcome string, duration float64)
	RecordTransportError(family, errorType string)
}

type nopRecorder struct{}

func (nopRecorder) RecordRequest(string, string, string, float64) {}
func (nopRecorder) RecordTransportError(string, string)           {}

// Option configures a Client.
type Option func(*Client)

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// Client talks to the iATS services of one region with one set of
// credentials. It holds no per-call state and is safe for concurrent use.
type Client struct {
	credentials Credentials
	region      Region
	transport   Transport
	logger      *otelzap.Logger
	tracer      trace.Tracer
	recorder    Recorder
}

// New creates a client that talks SOAP over HTTP.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer, opts ...Option) *Client {
	transport := NewSOAPTransport(SOAPTransportConfig{Timeout: cfg.Timeout})
	return NewWithTransport(cfg, transport, logger, tracer, opts...)
}

// NewWithTransport creates a client with a custom transport.
func NewWithTransport(cfg Config, transport Transport, logger *otelzap.Logger, tracer trace.Tracer, opts ...Option) *Client {
	if logger == nil {
		logger = otelzap.New(zap.NewNop())
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	}

	c := &Client{
		credentials: Credentials{AgentCode: cfg.AgentCode, Password: cfg.Password},
		region:      ParseRegion(string(cfg.Region)),
		transport:   transport,
		logger:      logger,
		tracer:      tracer,
		recorder:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Region returns the region the client is bound to.
func (c *Client) Region() Region {
	return c.region
}

// Call invokes an operation of family by name. Unknown operations are
// reported as validation failures.
func (c *Client) Call(ctx context.Context, family *Family, operation string, params Parameters) Result {
	if family == nil {
		return validationFailure("Unknown service family.", nil, ErrUnknownFamily)
	}
	return c.invoke(ctx, family, operation, params)
}

func (c *Client) invoke(ctx context.Context, family *Family, operation string, params Parameters) Result {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "iats."+family.Name+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("iats.family", family.Name),
			attribute.String("iats.operation", operation),
			attribute.String("iats.region", string(c.region)),
			attribute.String("iats.request_id", requestID),
		),
	)
	defer span.End()

	res := c.dispatch(ctx, family, operation, params.Clone())

	span.SetAttributes(attribute.String("iats.outcome", res.Kind.String()))
	fields := []zap.Field{
		zap.String("family", family.Name),
		zap.String("operation", operation),
		zap.String("region", string(c.region)),
		zap.String("request_id", requestID),
		zap.String("outcome", res.Kind.String()),
		zap.Duration("duration", time.Since(start)),
	}

	switch res.Kind {
	case KindTransportFailure:
		span.SetStatus(codes.Error, res.Message)
		c.recorder.RecordTransportError(family.Name, transportErrorType(res.cause))
		c.logger.Ctx(ctx).Warn("iATS call failed", append(fields, zap.String("message", res.Message))...)
	case KindAuthorizationRejection:
		c.logger.Ctx(ctx).Info("iATS call rejected", append(fields, zap.Int("reject_code", res.Code))...)
	case KindValidationFailure:
		c.logger.Ctx(ctx).Info("iATS call invalid", append(fields, zap.String("message", res.Message))...)
	default:
		c.logger.Ctx(ctx).Info("iATS call completed", fields...)
	}

	c.recorder.RecordRequest(operation, family.Name, res.Kind.String(), time.Since(start).Seconds())
	return res
}

func (c *Client) dispatch(ctx context.Context, family *Family, operation string, params Parameters) Result {
	op, ok := family.Operation(operation)
	if !ok {
		return validationFailure(fmt.Sprintf("Unknown operation %s.", operation), nil, ErrUnknownOperation)
	}

	if family.CheckRestrictions {
		if IsServerRestricted(op.Name, c.region) {
			return validationFailure(MsgServerRestricted, nil, ErrServerRestricted)
		}
		if IsMOPCurrencyRestricted(c.region, params.Text("currency"), params.Text("mop")) {
			return validationFailure(MsgMOPCurrencyRestricted, nil, ErrMOPCurrencyRestricted)
		}
	}

	wire, err := fill(op.Fields, params)
	if err != nil {
		return validationFailure(err.Error(), nil, err)
	}

	resp, err := c.transport.Call(ctx, &Call{
		Endpoint:    ResolveEndpoint(c.region, family),
		Operation:   op.SOAPName(),
		Credentials: c.credentials,
		Parameters:  wire,
	})
	if err != nil {
		return transportFailure(transportMessage(err), err)
	}

	result, err := extractResult(resp, op.ResultName())
	if err != nil {
		return transportFailure(err.Error(), err)
	}
	return family.classify(result)
}

// extractResult flattens the free-form content of the named result element.
// A missing result element or empty content yields an empty Node; plain text
// content is returned as a resultText error.
func extractResult(resp *etree.Element, resultName string) (Node, error) {
	if resp == nil {
		return Node{}, nil
	}
	result := resp.SelectElement(resultName)
	if result == nil {
		return Node{}, nil
	}

	if children := result.ChildElements(); len(children) > 0 {
		return FlattenElement(children[0]), nil
	}

	// Some responses carry the payload as escaped XML text.
	text := strings.TrimSpace(result.Text())
	if strings.HasPrefix(text, "<") {
		node, err := Flatten([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return node, nil
	}
	if text != "" {
		return nil, resultText(text)
	}
	return Node{}, nil
}

// resultText is a result element holding a plain gateway message instead of
// a response document. Error returns the message verbatim.
type resultText string

func (t resultText) Error() string { return string(t) }

func (t resultText) Unwrap() error { return ErrMalformedResponse }

func transportMessage(err error) string {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.String
	}
	return err.Error()
}

func transportErrorType(err error) string {
	var fault *Fault
	switch {
	case errors.As(err, &fault):
		return "fault"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "network"
	}
}
