package iats

import (
	"context"

	"golang.org/x/sync/errgroup"
)

var reportFields = []string{"customerIPAddress", "date"}

// ReportLink is the reporting family. Reports carry no authorization result;
// a successful call returns the whole result.
var ReportLink = newFamily(Family{
	Name: "report",
	Path: "/NetGate/ReportLink.asmx?WSDL",
	// No Authorization: reports are never classified as rejections.
},
	Operation{Name: "GetCreditCardJournal", Fields: reportFields},
	Operation{Name: "GetCreditCardReject", Fields: reportFields},
	Operation{Name: "GetACHEFTJournal", Fields: reportFields},
	Operation{Name: "GetACHEFTReject", Fields: reportFields},
)

// GetCreditCardJournal returns the approved credit card transactions of a day.
func (c *Client) GetCreditCardJournal(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ReportLink, "GetCreditCardJournal", params)
}

// GetCreditCardReject returns the rejected credit card transactions of a day.
func (c *Client) GetCreditCardReject(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ReportLink, "GetCreditCardReject", params)
}

// GetACHEFTJournal returns the ACH/EFT transactions of a day.
func (c *Client) GetACHEFTJournal(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ReportLink, "GetACHEFTJournal", params)
}

// GetACHEFTReject returns the rejected ACH/EFT transactions of a day.
func (c *Client) GetACHEFTReject(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ReportLink, "GetACHEFTReject", params)
}

// ReportRequest names a report operation and its parameters.
type ReportRequest struct {
	Operation  string
	Parameters Parameters
}

// ReportResult pairs a report operation with its outcome.
type ReportResult struct {
	Operation string `json:"operation"`
	Result    Result `json:"result"`
}

// maxConcurrentReports bounds the calls FetchReports has in flight.
const maxConcurrentReports = 4

// FetchReports runs the report requests in parallel and returns one result
// per request, in request order. A failing report does not stop the others.
func (c *Client) FetchReports(ctx context.Context, reqs []ReportRequest) []ReportResult {
	results := make([]ReportResult, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReports)

	for i, req := range reqs {
		g.Go(func() error {
			results[i] = ReportResult{
				Operation: req.Operation,
				Result:    c.invoke(ctx, ReportLink, req.Operation, req.Parameters),
			}
			return nil
		})
	}

	g.Wait()
	return results
}
