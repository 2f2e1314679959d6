package iats

import "context"

var (
	creditCardFields = []string{
		"customerIPAddress", "invoiceNum", "creditCardNum", "creditCardExpiry", "cvv2", "mop",
		"firstName", "lastName", "address", "city", "state", "zipCode", "total", "comment",
	}
	achEFTFields = []string{
		"customerIPAddress", "invoiceNum", "accountNum", "accountType",
		"firstName", "lastName", "address", "city", "state", "zipCode", "total", "comment",
	}
	customerCodeChargeFields = []string{"customerIPAddress", "customerCode", "invoiceNum", "cvv2", "total", "comment"}
	refundFields             = []string{"customerIPAddress", "transactionId", "total", "comment"}
)

// ProcessLink is the transaction processing family. Requests are checked
// against the server and MOP/currency restrictions before they are sent.
var ProcessLink = newFamily(Family{
	Name:              "process",
	Path:              "/NetGate/ProcessLink.asmx?WSDL",
	CheckRestrictions: true,
	Authorization:     processAuthorization,
},
	Operation{Name: "ProcessCreditCard", Fields: creditCardFields},
	Operation{Name: "ProcessCreditCardWithCustomerCode", Fields: customerCodeChargeFields},
	Operation{Name: "CreateCustomerCodeAndProcessCreditCard", Fields: creditCardFields},
	Operation{Name: "ProcessCreditCardRefundWithTransactionId", Fields: refundFields},
	Operation{Name: "ProcessACHEFT", Fields: achEFTFields},
	Operation{Name: "ProcessACHEFTWithCustomerCode", Fields: []string{"customerIPAddress", "customerCode", "invoiceNum", "total", "comment"}},
	Operation{Name: "ProcessACHEFTRefundWithTransactionId", Fields: refundFields},
	Operation{Name: "CreateCustomerCodeAndProcessACHEFT", Fields: achEFTFields},
)

// ProcessCreditCard charges a credit card.
func (c *Client) ProcessCreditCard(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "ProcessCreditCard", params)
}

// ProcessCreditCardWithCustomerCode charges the card stored under a customer code.
func (c *Client) ProcessCreditCardWithCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "ProcessCreditCardWithCustomerCode", params)
}

// CreateCustomerCodeAndProcessCreditCard charges a card and stores it under a new customer code.
func (c *Client) CreateCustomerCodeAndProcessCreditCard(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "CreateCustomerCodeAndProcessCreditCard", params)
}

// ProcessCreditCardRefund refunds a credit card transaction. total must be negative.
func (c *Client) ProcessCreditCardRefund(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "ProcessCreditCardRefundWithTransactionId", params)
}

// ProcessACHEFT debits a bank account.
func (c *Client) ProcessACHEFT(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "ProcessACHEFT", params)
}

// ProcessACHEFTWithCustomerCode debits the account stored under a customer code.
func (c *Client) ProcessACHEFTWithCustomerCode(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "ProcessACHEFTWithCustomerCode", params)
}

// ProcessACHEFTRefund refunds an ACH/EFT transaction.
func (c *Client) ProcessACHEFTRefund(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "ProcessACHEFTRefundWithTransactionId", params)
}

// CreateCustomerCodeAndProcessACHEFT debits an account and stores it under a new customer code.
func (c *Client) CreateCustomerCodeAndProcessACHEFT(ctx context.Context, params Parameters) Result {
	return c.invoke(ctx, ProcessLink, "CreateCustomerCodeAndProcessACHEFT", params)
}
