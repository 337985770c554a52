package graph

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// jsonPOST serves application/json POST requests. Parse, validation and
// resolver errors are reported in the "errors" key with HTTP 200; only an
// undecodable body is answered with 400.
type jsonPOST struct{}

var _ graphql.Transport = jsonPOST{}

// requestEnvelope accepts both the camelCase operationName used by most
// clients and the snake_case operation_name.
type requestEnvelope struct {
	Query              string         `json:"query"`
	OperationName      string         `json:"operationName"`
	SnakeOperationName string         `json:"operation_name"`
	Variables          map[string]any `json:"variables"`
	Extensions         map[string]any `json:"extensions"`
}

func (r requestEnvelope) operationName() string {
	if r.OperationName != "" {
		return r.OperationName
	}
	return r.SnakeOperationName
}

func (jsonPOST) Supports(r *http.Request) bool {
	if r.Header.Get("Upgrade") != "" || r.Method != http.MethodPost {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

func (jsonPOST) Do(w http.ResponseWriter, r *http.Request, exec graphql.GraphExecutor) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "application/json")

	var envelope requestEnvelope
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&envelope); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		gqlErr := gqlerror.Errorf("json request body could not be decoded: %s", err)
		writeJSON(w, exec.DispatchError(ctx, gqlerror.List{gqlErr}))
		return
	}

	params := &graphql.RawParams{
		Query:         envelope.Query,
		OperationName: envelope.operationName(),
		Variables:     envelope.Variables,
		Extensions:    envelope.Extensions,
	}

	oc, errs := exec.CreateOperationContext(ctx, params)
	if errs != nil {
		w.WriteHeader(http.StatusOK)
		writeJSON(w, exec.DispatchError(graphql.WithOperationContext(ctx, oc), errs))
		return
	}

	responses, ctx := exec.DispatchOperation(ctx, oc)
	writeJSON(w, responses(ctx))
}

func writeJSON(w http.ResponseWriter, response *graphql.Response) {
	// headers are already written; nothing useful left to do on failure
	_ = json.NewEncoder(w).Encode(response)
}
