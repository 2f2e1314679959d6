package graphql

import (
	"fmt"
	"time"

	gqlgen "github.com/99designs/gqlgen/graphql"
	"github.com/tournevent/iats/pkg/iats"
)

const reportDateLayout = "2006-01-02"

func resultToModel(res iats.Result) Result {
	kind := res.Kind.String()
	switch res.Kind {
	case iats.KindSuccess:
		return &Success{Typename: "Success", Kind: kind, Payload: res.Payload}
	case iats.KindValidationFailure:
		return &ValidationFailure{Typename: "ValidationFailure", Kind: kind, Message: res.Message, Payload: res.Payload}
	case iats.KindAuthorizationRejection:
		var auth string
		if leaf, ok := res.Payload.(iats.Leaf); ok {
			auth = string(leaf)
		}
		return &AuthorizationRejection{
			Typename:      "AuthorizationRejection",
			Kind:          kind,
			Code:          res.Code,
			Message:       res.Message,
			Authorization: auth,
		}
	default:
		return &TransportFailure{Typename: "TransportFailure", Kind: kind, Message: res.Message}
	}
}

func familyToModel(f *iats.Family) *Family {
	return &Family{
		Typename:           "Family",
		Name:               f.Name,
		Path:               f.Path,
		Operations:         f.Operations(),
		ChecksRestrictions: f.CheckRestrictions,
	}
}

func regionToModel(region, current iats.Region) *Region {
	out := &Region{Typename: "Region", Name: string(region), Current: region == current}
	for _, f := range iats.Families() {
		e := iats.ResolveEndpoint(region, f)
		out.Endpoints = append(out.Endpoints, &Endpoint{
			Typename: "Endpoint",
			Family:   f.Name,
			URL:      e.URL(),
			WSDL:     e.WSDL(),
		})
	}
	return out
}

func paramsFromInput(v any) (iats.Parameters, error) {
	if v == nil {
		return nil, nil
	}
	m, err := gqlgen.UnmarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	return iats.ParametersFromMap(m), nil
}

func stringsFromInput(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil, nil
		}
		list = []any{v}
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, err := gqlgen.UnmarshalString(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// parseReportDate parses a YYYY-MM-DD date; empty means today.
func parseReportDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	date, err := time.ParseInLocation(reportDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected %s", s, reportDateLayout)
	}
	return date, nil
}
