package graphql

import "github.com/tournevent/iats/pkg/iats"

// Result is one of Success, ValidationFailure, AuthorizationRejection or
// TransportFailure.
type Result interface {
	IsResult()
}

type Success struct {
	Typename string     `json:"__typename"`
	Kind     string     `json:"kind"`
	Payload  iats.Value `json:"payload"`
}

func (Success) IsResult() {}

type ValidationFailure struct {
	Typename string     `json:"__typename"`
	Kind     string     `json:"kind"`
	Message  string     `json:"message"`
	Payload  iats.Value `json:"payload"`
}

func (ValidationFailure) IsResult() {}

type AuthorizationRejection struct {
	Typename      string `json:"__typename"`
	Kind          string `json:"kind"`
	Code          int    `json:"code"`
	Message       string `json:"message"`
	Authorization string `json:"authorization"`
}

func (AuthorizationRejection) IsResult() {}

type TransportFailure struct {
	Typename string `json:"__typename"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

func (TransportFailure) IsResult() {}

type ReportResult struct {
	Typename  string `json:"__typename"`
	Operation string `json:"operation"`
	Result    Result `json:"result"`
}

type Region struct {
	Typename  string      `json:"__typename"`
	Name      string      `json:"name"`
	Current   bool        `json:"current"`
	Endpoints []*Endpoint `json:"endpoints"`
}

type Endpoint struct {
	Typename string `json:"__typename"`
	Family   string `json:"family"`
	URL      string `json:"url"`
	WSDL     string `json:"wsdl"`
}

type Family struct {
	Typename           string   `json:"__typename"`
	Name               string   `json:"name"`
	Path               string   `json:"path"`
	Operations         []string `json:"operations"`
	ChecksRestrictions bool     `json:"checksRestrictions"`
}
