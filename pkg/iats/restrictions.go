package iats

import "strings"

// Messages returned when a request is rejected locally, before any call is
// made to the gateway.
const (
	MsgServerRestricted      = "Service cannot be used on this server."
	MsgMOPCurrencyRestricted = "Service cannot be used with this Method of Payment or Currency."
)

// serverRestrictions lists, per SOAP operation, the regions it may not be
// used on. ACH/EFT is only offered by the North America servers.
var serverRestrictions = map[string][]Region{
	"ProcessACHEFT":                        {RegionUK},
	"ProcessACHEFTWithCustomerCode":        {RegionUK},
	"ProcessACHEFTRefundWithTransactionId": {RegionUK},
	"CreateCustomerCodeAndProcessACHEFT":   {RegionUK},
}

// mopCurrencyMatrix is the allow-list of methods of payment per region and
// currency. Anything not listed is restricted.
var mopCurrencyMatrix = map[Region]map[string][]string{
	RegionNA: {
		"USD": {"VISA", "MC", "AMX", "DSC", "ACHEFT"},
		"CAD": {"VISA", "MC", "AMX", "ACHEFT"},
	},
	RegionUK: {
		"AUD": {"VISA", "MC", "AMX"},
		"CAD": {"VISA", "MC", "AMX"},
		"EUR": {"VISA", "MC", "AMX"},
		"GBP": {"VISA", "MC", "AMX", "MAESTR"},
		"HKD": {"VISA", "MC", "AMX"},
		"JPY": {"VISA", "MC", "AMX"},
		"NZD": {"VISA", "MC", "AMX"},
		"SGD": {"VISA", "MC", "AMX"},
		"USD": {"VISA", "MC", "AMX"},
	},
}

// IsServerRestricted reports whether operation may not be used on region.
func IsServerRestricted(operation string, region Region) bool {
	for _, r := range serverRestrictions[operation] {
		if r == region {
			return true
		}
	}
	return false
}

// IsMOPCurrencyRestricted reports whether the method of payment mop may not
// be used with currency on region. A missing currency or mop is never
// restricted, since several operations legitimately omit them.
func IsMOPCurrencyRestricted(region Region, currency, mop string) bool {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	mop = strings.ToUpper(strings.TrimSpace(mop))
	if currency == "" || mop == "" {
		return false
	}

	if !region.Valid() {
		region = DefaultRegion
	}
	for _, allowed := range mopCurrencyMatrix[region][currency] {
		if allowed == mop {
			return false
		}
	}
	return true
}
