package graphql

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	gqlgen "github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// maxRequestBodySize caps the size of a GraphQL request body.
const maxRequestBodySize = 1 << 20

// Handler serves GraphQL over HTTP. POST accepts application/json or
// application/graphql bodies; GET reads query, operationName and variables
// from the URL.
type Handler struct {
	resolver *Resolver
}

// NewHandler creates a handler executing against resolver.
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		params *gqlgen.RawParams
		err    error
	)
	switch r.Method {
	case http.MethodGet:
		params, err = parseGetRequest(r)
	case http.MethodPost:
		params, err = parsePostRequest(r)
	default:
		writeResponse(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
		return
	}
	if err != nil {
		writeResponse(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	resp := h.resolver.Execute(r.Context(), params)
	status := http.StatusOK
	if resp.Data == nil {
		status = http.StatusUnprocessableEntity
	}
	writeResponse(w, status, resp)
}

func parseGetRequest(r *http.Request) (*gqlgen.RawParams, error) {
	q := r.URL.Query()
	params := &gqlgen.RawParams{
		Query:         q.Get("query"),
		OperationName: q.Get("operationName"),
	}
	if vars := q.Get("variables"); vars != "" {
		if err := decodeJSON(strings.NewReader(vars), &params.Variables); err != nil {
			return nil, errInvalidVariables
		}
	}
	return params, nil
}

func parsePostRequest(r *http.Request) (*gqlgen.RawParams, error) {
	body := io.LimitReader(r.Body, maxRequestBodySize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/graphql") {
		query, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		return &gqlgen.RawParams{Query: string(query)}, nil
	}

	var params gqlgen.RawParams
	if err := decodeJSON(body, &params); err != nil {
		return nil, errInvalidBody
	}
	return &params, nil
}

var (
	errInvalidVariables = errors.New("invalid variables JSON")
	errInvalidBody      = errors.New("invalid JSON request body")
)

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

func errorResponse(message string) *gqlgen.Response {
	return &gqlgen.Response{Errors: gqlerror.List{gqlerror.Errorf("%s", message)}}
}

func writeResponse(w http.ResponseWriter, status int, resp *gqlgen.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
