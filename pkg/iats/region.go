package iats

import "strings"

// Region selects the iATS server group a client talks to.
type Region string

const (
	RegionNA Region = "NA"
	RegionUK Region = "UK"
)

// DefaultRegion is used when no region, or an unknown one, is configured.
const DefaultRegion = RegionNA

var regionBaseURLs = map[Region]string{
	RegionNA: "https://www.iatspayments.com",
	RegionUK: "https://www.uk.iatspayments.com",
}

// Regions returns the enumerated regions in a stable order.
func Regions() []Region {
	return []Region{RegionNA, RegionUK}
}

// ParseRegion maps a region identifier to a Region. Matching is
// case-insensitive and anything unrecognised resolves to DefaultRegion.
func ParseRegion(s string) Region {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := regionBaseURLs[r]; ok {
		return r
	}
	return DefaultRegion
}

// Valid reports whether r is one of the enumerated regions.
func (r Region) Valid() bool {
	_, ok := regionBaseURLs[r]
	return ok
}

// Endpoint describes where a service family is served for a region.
type Endpoint struct {
	BaseURL string
	Path    string
}

// URL returns the SOAP service URL, without the WSDL query.
func (e Endpoint) URL() string {
	path := e.Path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return e.BaseURL + path
}

// WSDL returns the WSDL document URL.
func (e Endpoint) WSDL() string {
	return e.BaseURL + e.Path
}

// ResolveEndpoint returns the endpoint of family for region. It is total:
// an unknown region falls back to DefaultRegion.
func ResolveEndpoint(region Region, family *Family) Endpoint {
	base, ok := regionBaseURLs[region]
	if !ok {
		base = regionBaseURLs[DefaultRegion]
	}
	var path string
	if family != nil {
		path = family.Path
	}
	return Endpoint{BaseURL: base, Path: path}
}
