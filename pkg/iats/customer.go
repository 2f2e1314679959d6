package iats

import "context"

var (
	customerProfileFields = []string{
		"customerIPAddress", "customerCode", "firstName", "lastName", "companyName",
		"address", "city", "state", "zipCode", "phone", "fax", "alternatePhone", "email", "comment",
		"recurring", "amount", "beginDate", "endDate", "scheduleType", "scheduleDate",
	}
	creditCardCustomerFields = append(append([]string{}, customerProfileFields...),
		"creditCardCustomerName", "creditCardNum", "creditCardExpiry", "mop")
	achEFTCustomerFields = append(append([]string{}, customerProfileFields...),
		"accountCustomerName", "accountNum", "accountType")
	customerCodeFields = []string{"customerIPAddress", "customerCode"}
)

// CustomerLink is the customer code management family. A successful call
// returns the authorization result when there is one, then the CUSTOMERS
// section, then the whole result.
var CustomerLink = newFamily(Family{
	Name:          "customer",
	Path:          "/NetGate/CustomerLink.asmx?WSDL",
	Authorization: customerAuthorization,
	SuccessPayload: func(_ Node, auth Value) Value {
		return auth
	},
},
	Operation{Name: "GetCustomerCodeDetail", Fields: customerCodeFields},
	Operation{Name: "CreateCreditCardCustomerCode", Fields: creditCardCustomerFields},
	Operation{Name: "UpdateCreditCardCustomerCode", Fields: append(append([]string{}, creditCardCustomerFields...), "updateCreditCardNum")},
	Operation{Name: "CreateACHEFTCustomerCode", Fields: achEFTCustomerFields},
	Operation{Name: "UpdateACHEFTCustomerCode", Fields: append(append([]string{}, achEFTCustomerFields...), "updateAccountNum")},
	Operation{Name: "DeleteCustomerCode", Fields: customerCodeFields},
)

// GetCustomerCodeDetail fetches the profile stored under a customer code.
func (c *Client) GetCustomerCodeDetail(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, CustomerLink, "GetCustomerCodeDetail", params)
}

// CreateCreditCardCustomerCode stores a credit card profile.
func (c *Client) CreateCreditCardCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, CustomerLink, "CreateCreditCardCustomerCode", params)
}

// UpdateCreditCardCustomerCode updates a stored credit card profile.
func (c *Client) UpdateCreditCardCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, CustomerLink, "UpdateCreditCardCustomerCode", params)
}

// CreateACHEFTCustomerCode stores a bank account profile.
func (c *Client) CreateACHEFTCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, CustomerLink, "CreateACHEFTCustomerCode", params)
}

// UpdateACHEFTCustomerCode updates a stored bank account profile.
func (c *Client) UpdateACHEFTCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, CustomerLink, "UpdateACHEFTCustomerCode", params)
}

// DeleteCustomerCode removes a stored profile.
func (c *Client) DeleteCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, CustomerLink, "DeleteCustomerCode", params)
}
