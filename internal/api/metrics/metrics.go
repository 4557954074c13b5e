// Package metrics defines and registers all custom Prometheus metrics for
// the maintenance-tracking API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry at package init; the /metrics endpoint is wired by the
// router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maintenance"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer-token verifications on API routes.
// Label:
//   - result: "ok", "missing", "expired", "bad_signature", or "malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts page-guard outcomes.
// Label:
//   - outcome: "allow", "no_token", "invalid_token", or "role_insufficient"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of page guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// MaintenanceLoggedTotal counts maintenance events recorded.
// Label:
//   - type: "Preventiva", "Corretiva", or "Emergencial"
var MaintenanceLoggedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "maintenance_logged_total",
		Help:      "Total number of maintenance events recorded, by type.",
	},
	[]string{"type"},
)

// AuditQueueDepth tracks entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
