package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/changhyeonkim/ambient-toolbox/internal/graph"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultGraphQLURL is where the GraphQL endpoint is mounted unless overridden
const DefaultGraphQLURL = "/graphql/"

var ErrGraphQLSchemaNotDefined = errors.New("testutil: GraphQL schema not defined for GraphQLTestCase")

// GraphQLTestCase posts queries to a GraphQL endpoint bound to a caller-supplied schema.
//
// Usage:
//
//	tc := testutil.NewGraphQLTestCase(t, schema)
//	resp := tc.Query(`{ ping }`, "", nil)
//	tc.AssertResponseNoErrors(resp)
type GraphQLTestCase struct {
	t      *testing.T
	router *gin.Engine
	url    string
	actor  *audit.Actor
}

type graphQLOptions struct {
	url         string
	middlewares []gin.HandlerFunc
}

type GraphQLOption func(*graphQLOptions)

// WithGraphQLURL mounts the endpoint at url instead of DefaultGraphQLURL
func WithGraphQLURL(url string) GraphQLOption {
	return func(o *graphQLOptions) {
		o.url = url
	}
}

// WithGraphQLMiddleware runs the given handlers in front of the endpoint
func WithGraphQLMiddleware(middlewares ...gin.HandlerFunc) GraphQLOption {
	return func(o *graphQLOptions) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// NewGraphQLTestCase fails the test immediately when schema is not set
func NewGraphQLTestCase(t *testing.T, schema gql.ExecutableSchema, opts ...GraphQLOption) *GraphQLTestCase {
	t.Helper()

	tc, err := newGraphQLTestCase(t, schema, opts...)
	require.NoError(t, err)
	return tc
}

func newGraphQLTestCase(t *testing.T, schema gql.ExecutableSchema, opts ...GraphQLOption) (*GraphQLTestCase, error) {
	if isNilSchema(schema) {
		return nil, ErrGraphQLSchemaNotDefined
	}

	options := graphQLOptions{url: DefaultGraphQLURL}
	for _, opt := range opts {
		opt(&options)
	}

	router := SetupTestRouter()
	handlers := append(options.middlewares, gin.WrapH(graph.NewHandler(schema)))
	router.POST(options.url, handlers...)

	return &GraphQLTestCase{
		t:      t,
		router: router,
		url:    options.url,
	}, nil
}

func isNilSchema(schema gql.ExecutableSchema) bool {
	if schema == nil {
		return true
	}
	rv := reflect.ValueOf(schema)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// AsActor returns a copy whose requests carry actor as the current user
func (tc *GraphQLTestCase) AsActor(actor audit.Actor) *GraphQLTestCase {
	clone := *tc
	clone.actor = &actor
	return &clone
}

// Query posts a GraphQL query or mutation.
// opName is only sent for named operations; input, if not empty, becomes the $input variable.
func (tc *GraphQLTestCase) Query(query string, opName string, input map[string]any) *httptest.ResponseRecorder {
	tc.t.Helper()

	body := map[string]any{"query": query}
	if opName != "" {
		body["operation_name"] = opName
	}
	if len(input) > 0 {
		body["variables"] = map[string]any{"input": input}
	}

	req := TestRequest{
		Method: http.MethodPost,
		URL:    tc.url,
		Body:   body,
	}
	if tc.actor != nil {
		req.Context = audit.WithActor(tc.t.Context(), *tc.actor)
	}

	return ExecuteRequest(tc.t, tc.router, req)
}

// AssertResponseNoErrors asserts status 200 and no "errors" key
func (tc *GraphQLTestCase) AssertResponseNoErrors(resp *httptest.ResponseRecorder) bool {
	tc.t.Helper()

	content := tc.envelope(resp)
	statusOK := assert.Equal(tc.t, http.StatusOK, resp.Code)
	noErrors := assert.NotContains(tc.t, content, "errors", "unexpected errors: %s", content["errors"])
	return statusOK && noErrors
}

// AssertResponseHasErrors asserts the "errors" key is present.
// GraphQL reports query errors with status 200, so the status is not checked.
func (tc *GraphQLTestCase) AssertResponseHasErrors(resp *httptest.ResponseRecorder) bool {
	tc.t.Helper()

	content := tc.envelope(resp)
	return assert.Contains(tc.t, content, "errors")
}

// DecodeData unmarshals the "data" key into v
func (tc *GraphQLTestCase) DecodeData(resp *httptest.ResponseRecorder, v any) {
	tc.t.Helper()

	content := tc.envelope(resp)
	data, ok := content["data"]
	require.True(tc.t, ok, "response has no data: %s", resp.Body.String())
	require.NoError(tc.t, json.Unmarshal(data, v))
}

func (tc *GraphQLTestCase) envelope(resp *httptest.ResponseRecorder) map[string]json.RawMessage {
	tc.t.Helper()

	var content map[string]json.RawMessage
	require.NoError(tc.t, json.Unmarshal(resp.Body.Bytes(), &content), "body: %s", resp.Body.String())
	return content
}
