// Package metrics defines all custom Prometheus metrics for the BizDesk
// API. It is the single source of truth for metric names, labels, and
// help strings; registration happens implicitly through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bizdesk"

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ResourcesCreatedTotal counts successfully created documents.
// Label:
//   - resource: "project", "budget", "lead", or "payment"
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of documents created, by resource type.",
	},
	[]string{"resource"},
)

// ResourceErrorsTotal counts failed resource operations.
// Labels:
//   - resource: the resource type
//   - reason: the wire error code (e.g. "missing_fields", "not_found")
var ResourceErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_errors_total",
		Help:      "Total number of failed resource operations, by error code.",
	},
	[]string{"resource", "reason"},
)
