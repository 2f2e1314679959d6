package iats

import (
	"sort"
	"strings"
)

// Family describes one iATS service (ProcessLink, CustomerLink, ReportLink):
// where it is served, whether local restriction checks apply, and which part
// of a result carries the authorization outcome.
type Family struct {
	Name string
	Path string

	// CheckRestrictions enables the server and MOP/currency checks before a
	// call is made.
	CheckRestrictions bool

	// Authorization selects the authorization value from a flattened result.
	// It returns false when the result has none.
	Authorization func(result Node) (Value, bool)

	// SuccessPayload selects what a successful call returns. When nil the
	// whole result is returned.
	SuccessPayload func(result Node, auth Value) Value

	operations map[string]Operation
}

// Operation is a single remote operation of a family.
type Operation struct {
	Name   string
	Fields []string
}

// SOAPName is the operation name on the wire.
func (o Operation) SOAPName() string { return o.Name + "V1" }

// ResultName is the response element that carries the operation result.
func (o Operation) ResultName() string { return o.Name + "V1Result" }

// Operation returns the named operation of the family.
func (f *Family) Operation(name string) (Operation, bool) {
	op, ok := f.operations[name]
	return op, ok
}

// Operations returns the operation names of the family, sorted.
func (f *Family) Operations() []string {
	names := make([]string, 0, len(f.operations))
	for name := range f.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newFamily(f Family, ops ...Operation) *Family {
	f.operations = make(map[string]Operation, len(ops))
	for _, op := range ops {
		f.operations[op.Name] = op
	}
	return &f
}

// Families returns all service families.
func Families() []*Family {
	return []*Family{ProcessLink, CustomerLink, ReportLink}
}

var familyAliases = map[string]*Family{}

func init() {
	for _, f := range Families() {
		familyAliases[f.Name] = f
	}
	familyAliases["processlink"] = ProcessLink
	familyAliases["transaction"] = ProcessLink
	familyAliases["customerlink"] = CustomerLink
	familyAliases["customer-code"] = CustomerLink
	familyAliases["reportlink"] = ReportLink
	familyAliases["reporting"] = ReportLink
}

// LookupFamily resolves a family by name or alias, case-insensitively.
func LookupFamily(name string) (*Family, bool) {
	f, ok := familyAliases[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// classify turns a flattened result into a Result:
// STATUS=Failure is a validation failure carrying ERRORS, an authorization
// value containing REJECT is a rejection, anything else is a success.
func (f *Family) classify(result Node) Result {
	if result.Text("STATUS") == "Failure" {
		errs, _ := result.Get("ERRORS")
		return validationFailure(result.Text("ERRORS"), errs, nil)
	}

	var auth Value
	if f.Authorization != nil {
		auth, _ = f.Authorization(result)
	}
	if leaf, ok := auth.(Leaf); ok {
		if code, rejected := ParseRejectCode(string(leaf)); rejected {
			return authorizationRejection(code, rejectMessage(string(leaf), code), string(leaf))
		}
	}

	if f.SuccessPayload != nil {
		return success(f.SuccessPayload(result, auth))
	}
	return success(result)
}

func processAuthorization(result Node) (Value, bool) {
	return result.Lookup("PROCESSRESULT", "AUTHORIZATIONRESULT")
}

// customerAuthorization prefers PROCESSRESULT.AUTHORIZATIONRESULT, then
// CUSTOMERS, then the raw result; different CustomerLink operations answer
// in different shapes. Empty links are skipped.
func customerAuthorization(result Node) (Value, bool) {
	if v, ok := result.Lookup("PROCESSRESULT", "AUTHORIZATIONRESULT"); ok && !isEmpty(v) {
		return v, true
	}
	if v, ok := result.Get("CUSTOMERS"); ok && !isEmpty(v) {
		return v, true
	}
	return result, true
}

func isEmpty(v Value) bool {
	switch v := v.(type) {
	case Leaf:
		return strings.TrimSpace(string(v)) == ""
	case Node:
		return len(v) == 0
	default:
		return true
	}
}
