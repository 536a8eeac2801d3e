// Package metrics defines and registers all custom Prometheus metrics for
// the aid registry API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registry"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "failure", or "locked"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsOpenedTotal counts sessions established by login or registration.
var SessionsOpenedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_opened_total",
		Help:      "Total number of sessions opened.",
	},
)

// SessionsRevokedTotal counts sessions ended by explicit logout.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of sessions revoked by logout.",
	},
)

// MaintenanceRejectionsTotal counts requests turned away by the
// maintenance gate.
var MaintenanceRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_rejections_total",
		Help:      "Total number of requests rejected while in maintenance mode.",
	},
)

// PolicyRejectionsTotal counts password submissions blocked by the policy.
var PolicyRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_policy_rejections_total",
		Help:      "Total number of passwords rejected by the active policy.",
	},
)
