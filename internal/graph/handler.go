package graph

import (
	"context"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/metrics"
)

// NewHandler wraps an executable schema in a gqlgen server speaking the JSON
// POST envelope. Every operation is counted and logged.
func NewHandler(es graphql.ExecutableSchema) *handler.Server {
	srv := handler.New(es)
	srv.AddTransport(jsonPOST{})
	srv.AroundOperations(instrumentOperation)
	return srv
}

// PlaygroundHandler serves the GraphQL playground for the given endpoint
func PlaygroundHandler(endpoint string) http.HandlerFunc {
	return playground.Handler("GraphQL", endpoint)
}

func instrumentOperation(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
	oc := graphql.GetOperationContext(ctx)
	operationType := "unknown"
	if oc.Operation != nil {
		operationType = string(oc.Operation.Operation)
	}

	start := time.Now()
	responses := next(ctx)

	return func(ctx context.Context) *graphql.Response {
		response := responses(ctx)
		if response == nil {
			return nil
		}

		status := "ok"
		if len(response.Errors) > 0 {
			status = "error"
		}
		metrics.GraphQLOperations.WithLabelValues(operationType, status).Inc()

		logger.FromContext(ctx).Info("GraphQL operation processed",
			"operation_type", operationType,
			"operation_name", oc.OperationName,
			"status", status,
			"errors", len(response.Errors),
			"latency", time.Since(start).String(),
		)
		return response
	}
}
