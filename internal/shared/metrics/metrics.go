package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "ambient_toolbox"

const (
	NameAuditStamps       = "audit_stamps_total"
	NameGraphQLOperations = "graphql_operations_total"

	LabelOperation     = "operation"
	LabelActor         = "actor"
	LabelOperationType = "operation_type"
	LabelStatus        = "status"
)

var AuditStamps = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameAuditStamps,
		Help:      "Total audit field stamps applied before persisting a record",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelActor},
)

var GraphQLOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameGraphQLOperations,
		Help:      "Total GraphQL operations executed",
		Namespace: Namespace,
	},
	[]string{LabelOperationType, LabelStatus},
)

const (
	NameHTTPRequests        = "http_requests_total"
	NameHTTPRequestDuration = "http_request_duration_seconds"

	LabelMethod = "method"
	LabelRoute  = "route"
	LabelCode   = "code"
)

var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameHTTPRequests,
		Help:      "Total HTTP requests by route template and status code",
		Namespace: Namespace,
	},
	[]string{LabelMethod, LabelRoute, LabelCode},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:      NameHTTPRequestDuration,
		Help:      "HTTP request latency by route template",
		Namespace: Namespace,
		Buckets:   prometheus.DefBuckets,
	},
	[]string{LabelMethod, LabelRoute},
)
