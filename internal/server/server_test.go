package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/iats/internal/server"
	"github.com/tournevent/iats/internal/telemetry"
	"github.com/tournevent/iats/pkg/iats"
	"github.com/tournevent/iats/pkg/iats/mock"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, gw *mock.Gateway) http.Handler {
	t.Helper()

	logger := otelzap.New(zap.NewNop())
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	client := iats.NewWithTransport(iats.Config{
		AgentCode: "TEST88",
		Password:  "TEST88",
		Region:    iats.RegionNA,
	}, gw, logger, nil, iats.WithRecorder(metrics))

	return server.New(server.Config{Port: 8080, Gatherer: reg}, client, logger).Handler()
}

type resultBody struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, resultBody) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out resultBody
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestServer_Health(t *testing.T) {
	h := newTestServer(t, mock.New())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Call_Success(t *testing.T) {
	h := newTestServer(t, mock.New())

	rec, out := post(t, h, "/v1/process/ProcessCreditCard",
		`{"creditCardNum":"4222222222222220","creditCardExpiry":"12/17","mop":"VISA","currency":"USD","total":15}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "success", out.Kind)
	assert.Contains(t, string(out.Payload), "OK: 678594:")
}

func TestServer_Call_SendsNormalisedAmount(t *testing.T) {
	gw := mock.New()
	h := newTestServer(t, gw)

	post(t, h, "/v1/transaction/ProcessCreditCard", `{"total":15,"mop":"VISA"}`)

	require.Equal(t, 1, gw.CallCount())
	assert.Equal(t, "15.00", gw.Calls()[0].Parameters.Text("total"))
}

func TestServer_Call_Restricted(t *testing.T) {
	gw := mock.New()
	h := newTestServer(t, gw)

	rec, out := post(t, h, "/v1/process/ProcessCreditCard", `{"currency":"GBP","mop":"VISA"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "validation_failure", out.Kind)
	assert.Equal(t, iats.MsgMOPCurrencyRestricted, out.Message)
	assert.Zero(t, gw.CallCount())
}

func TestServer_Call_Rejected(t *testing.T) {
	gw := mock.New()
	gw.Responses = map[string]iats.Node{"ProcessCreditCard": mock.Rejected("REJECT: 5")}
	h := newTestServer(t, gw)

	_, out := post(t, h, "/v1/process/ProcessCreditCard", `{}`)

	assert.Equal(t, "authorization_rejection", out.Kind)
	assert.Equal(t, 5, out.Code)
	assert.Equal(t, iats.ResolveReject(5), out.Message)
}

func TestServer_Call_EmptyBody(t *testing.T) {
	h := newTestServer(t, mock.New())

	rec, out := post(t, h, "/v1/report/GetCreditCardJournal", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", out.Kind)
}

func TestServer_Call_UnknownOperation(t *testing.T) {
	h := newTestServer(t, mock.New())

	_, out := post(t, h, "/v1/customer/NoSuchThing", `{}`)

	assert.Equal(t, "validation_failure", out.Kind)
	assert.Equal(t, "Unknown operation NoSuchThing.", out.Message)
}

func TestServer_Call_UnknownFamily(t *testing.T) {
	h := newTestServer(t, mock.New())

	rec, _ := post(t, h, "/v1/shipping/ProcessCreditCard", `{}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Call_InvalidJSON(t *testing.T) {
	h := newTestServer(t, mock.New())

	rec, _ := post(t, h, "/v1/process/ProcessCreditCard", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON")
}

func TestServer_Call_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, mock.New())

	req := httptest.NewRequest(http.MethodGet, "/v1/process/ProcessCreditCard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method not allowed")
}

func TestServer_Family(t *testing.T) {
	h := newTestServer(t, mock.New())

	req := httptest.NewRequest(http.MethodGet, "/v1/reporting", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Family     string   `json:"family"`
		Operations []string `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "report", out.Family)
	assert.Contains(t, out.Operations, "GetACHEFTReject")
}

func TestServer_Regions(t *testing.T) {
	h := newTestServer(t, mock.New())

	req := httptest.NewRequest(http.MethodGet, "/v1/regions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"region":"NA","current":true}`)
	assert.Contains(t, rec.Body.String(), `{"region":"UK","current":false}`)
}

func TestServer_Metrics(t *testing.T) {
	h := newTestServer(t, mock.New())

	post(t, h, "/v1/process/ProcessCreditCard", `{}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `iats_requests_total{family="process",operation="ProcessCreditCard",outcome="success"} 1`)
}

func TestServer_GraphQL(t *testing.T) {
	gw := mock.New()
	gw.Responses = map[string]iats.Node{"ProcessCreditCard": mock.Rejected("REJECT: 5")}
	h := newTestServer(t, gw)

	query := `mutation { call(family: "process", operation: "ProcessCreditCard", params: {total: 15, mop: "VISA", currency: "USD"}) { ... on AuthorizationRejection { kind code } } }`
	payload, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"call":{"kind":"authorization_rejection","code":5}}}`, rec.Body.String())
	assert.Equal(t, "15.00", gw.Calls()[0].Parameters.Text("total"))
}
