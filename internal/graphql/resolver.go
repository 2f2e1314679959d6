package graphql

import (
	"context"
	"fmt"

	"github.com/tournevent/iats/pkg/iats"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Resolver is the root resolver for the GraphQL schema.
// It holds dependencies needed by all resolvers.
type Resolver struct {
	Client *iats.Client
	Logger *otelzap.Logger
}

// NewResolver creates a new resolver with the given dependencies.
func NewResolver(client *iats.Client, logger *otelzap.Logger) *Resolver {
	return &Resolver{
		Client: client,
		Logger: logger,
	}
}

type QueryResolver interface {
	Health(ctx context.Context) (string, error)
	Regions(ctx context.Context) ([]*Region, error)
	Families(ctx context.Context) ([]*Family, error)
	Family(ctx context.Context, name string) (*Family, error)
}

type MutationResolver interface {
	Call(ctx context.Context, family string, operation string, params iats.Parameters) (Result, error)
	FetchReports(ctx context.Context, date string, operations []string) ([]*ReportResult, error)
}

// Query returns the resolver for root query fields.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Mutation returns the resolver for root mutation fields.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

type queryResolver struct{ *Resolver }

func (r *queryResolver) Health(ctx context.Context) (string, error) {
	return "ok", nil
}

func (r *queryResolver) Regions(ctx context.Context) ([]*Region, error) {
	current := r.Client.Region()
	var out []*Region
	for _, region := range iats.Regions() {
		out = append(out, regionToModel(region, current))
	}
	return out, nil
}

func (r *queryResolver) Families(ctx context.Context) ([]*Family, error) {
	var out []*Family
	for _, f := range iats.Families() {
		out = append(out, familyToModel(f))
	}
	return out, nil
}

func (r *queryResolver) Family(ctx context.Context, name string) (*Family, error) {
	f, ok := iats.LookupFamily(name)
	if !ok {
		return nil, nil
	}
	return familyToModel(f), nil
}

type mutationResolver struct{ *Resolver }

func (r *mutationResolver) Call(ctx context.Context, family string, operation string, params iats.Parameters) (Result, error) {
	f, ok := iats.LookupFamily(family)
	if !ok {
		return nil, fmt.Errorf("%w: %s", iats.ErrUnknownFamily, family)
	}

	res := r.Client.Call(ctx, f, operation, params)
	r.Logger.Ctx(ctx).Debug("GraphQL call resolved",
		zap.String("family", f.Name),
		zap.String("operation", operation),
		zap.Stringer("outcome", res.Kind),
	)
	return resultToModel(res), nil
}

func (r *mutationResolver) FetchReports(ctx context.Context, date string, operations []string) ([]*ReportResult, error) {
	day, err := parseReportDate(date)
	if err != nil {
		return nil, err
	}
	if len(operations) == 0 {
		operations = iats.ReportLink.Operations()
	}

	reqs := make([]iats.ReportRequest, 0, len(operations))
	for _, op := range operations {
		reqs = append(reqs, iats.ReportRequest{
			Operation:  op,
			Parameters: iats.Parameters{{Name: "date", Value: day}},
		})
	}

	var out []*ReportResult
	for _, rr := range r.Client.FetchReports(ctx, reqs) {
		out = append(out, &ReportResult{
			Typename:  "ReportResult",
			Operation: rr.Operation,
			Result:    resultToModel(rr.Result),
		})
	}
	return out, nil
}
