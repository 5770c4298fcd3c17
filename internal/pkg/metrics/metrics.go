// Package metrics defines and registers the custom Prometheus metrics of the
// items API. HTTP request metrics come from the echoprometheus middleware; the
// ones here describe what happened inside the services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "items_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "inactive"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Item metrics ──────────────────────────────────────────────────────────────

// ItemOperationsTotal counts item operations that completed successfully.
// Label:
//   - op: "create", "list", "get", "update" or "delete"
var ItemOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_operations_total",
		Help:      "Total number of successful item operations.",
	},
	[]string{"op"},
)

// OwnershipDenialsTotal counts requests rejected because the caller does not
// own the item.
// Label:
//   - op: the attempted operation
var OwnershipDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of item accesses rejected by the ownership check.",
	},
	[]string{"op"},
)
