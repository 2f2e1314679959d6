package mock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/iats/pkg/iats"
	"github.com/tournevent/iats/pkg/iats/mock"
)

func processCall(operation string) *iats.Call {
	return &iats.Call{
		Endpoint:    iats.ResolveEndpoint(iats.RegionNA, iats.ProcessLink),
		Operation:   operation,
		Credentials: iats.Credentials{AgentCode: "TEST88", Password: "TEST88"},
		Parameters:  iats.Parameters{{Name: "total", Value: "1.00"}},
	}
}

func resultOf(t *testing.T, resp *etree.Element, operation string) iats.Node {
	t.Helper()
	require.NotNil(t, resp)
	result := resp.SelectElement(operation + "Result")
	require.NotNil(t, result)
	return iats.FlattenElement(result).Child("IATSRESPONSE")
}

func TestGateway_DefaultApproves(t *testing.T) {
	gw := mock.New()

	resp, err := gw.Call(context.Background(), processCall("ProcessCreditCardV1"))
	require.NoError(t, err)

	assert.Equal(t, "ProcessCreditCardV1Response", resp.Tag)
	node := resultOf(t, resp, "ProcessCreditCardV1")
	assert.Equal(t, "Success", node.Text("STATUS"))
	assert.Equal(t, "OK: 678594:", node.Child("PROCESSRESULT").Text("AUTHORIZATIONRESULT"))
}

func TestGateway_Responses(t *testing.T) {
	gw := mock.New()
	gw.Responses = map[string]iats.Node{"ProcessCreditCard": mock.Failed("Invalid total")}

	resp, err := gw.Call(context.Background(), processCall("ProcessCreditCardV1"))
	require.NoError(t, err)

	node := resultOf(t, resp, "ProcessCreditCardV1")
	assert.Equal(t, "Failure", node.Text("STATUS"))
	assert.Equal(t, "Invalid total", node.Text("ERRORS"))
}

func TestGateway_BadCredentials(t *testing.T) {
	gw := mock.New()
	gw.AgentCode = "TEST88"
	gw.Password = "other"

	_, err := gw.Call(context.Background(), processCall("ProcessCreditCardV1"))

	var fault *iats.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, mock.BadCredentials, fault.String)
}

func TestGateway_Fault(t *testing.T) {
	gw := mock.New()
	gw.Fault = &iats.Fault{Code: "soap:Server", String: "boom"}

	_, err := gw.Call(context.Background(), processCall("ProcessCreditCardV1"))

	assert.EqualError(t, err, "boom")
}

func TestGateway_OnCall(t *testing.T) {
	gw := mock.New()
	gw.OnCall = func(ctx context.Context, call *iats.Call) (*etree.Element, error) {
		return nil, errors.New("custom")
	}

	_, err := gw.Call(context.Background(), processCall("ProcessCreditCardV1"))

	assert.EqualError(t, err, "custom")
}

func TestGateway_LatencyHonoursContext(t *testing.T) {
	gw := mock.New()
	gw.Latency = time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := gw.Call(ctx, processCall("ProcessCreditCardV1"))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGateway_RecordsCalls(t *testing.T) {
	gw := mock.New()
	call := processCall("ProcessCreditCardV1")

	gw.Call(context.Background(), call)
	call.Parameters[0].Value = "changed"
	gw.Call(context.Background(), processCall("ProcessACHEFTV1"))

	calls := gw.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, gw.CallCount())
	assert.Equal(t, "ProcessCreditCardV1", calls[0].Operation)
	assert.Equal(t, "1.00", calls[0].Parameters.Text("total"))
	assert.Equal(t, "ProcessACHEFTV1", calls[1].Operation)
}

func TestGateway_ReportDefault(t *testing.T) {
	gw := mock.New()
	call := &iats.Call{
		Endpoint:    iats.ResolveEndpoint(iats.RegionNA, iats.ReportLink),
		Operation:   "GetCreditCardJournalV1",
		Credentials: iats.Credentials{AgentCode: "TEST88"},
		Parameters:  iats.Parameters{{Name: "date", Value: "2024-03-09T00:00:00"}},
	}

	resp, err := gw.Call(context.Background(), call)
	require.NoError(t, err)

	tn := resultOf(t, resp, "GetCreditCardJournalV1").Child("JOURNALREPORT").Child("TN")
	assert.Equal(t, "TEST88", tn.Text("AGT"))
	assert.Equal(t, "2024-03-09T00:00:00", tn.Text("DTM"))
}

func TestRejected(t *testing.T) {
	node := mock.Rejected("REJECT: 19")

	v, ok := node.Lookup("PROCESSRESULT", "AUTHORIZATIONRESULT")
	require.True(t, ok)
	assert.Equal(t, iats.Leaf("REJECT: 19"), v)
}
