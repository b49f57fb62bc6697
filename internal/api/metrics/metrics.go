// Package metrics defines and registers all custom Prometheus metrics for the
// lost-and-found API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lostfound"

// ── Authentication metrics ───────────────────────────────────────────────────

// AuthAttemptsTotal counts credential operations by outcome.
// Labels:
//   - operation: "register", "login" or "bootstrap_admin"
//   - outcome: "success", "invalid_credentials", "duplicate", "blocked", "error", …
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of credential operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GateDecisionsTotal counts how the authentication gate resolved each request.
// Label:
//   - result: "authenticated", "anonymous", "public", "invalid_token", "unknown_account", "lookup_error"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of requests seen by the authentication gate, by result.",
	},
	[]string{"result"},
)

// AccessDeniedTotal counts rejected protected operations.
// Label:
//   - kind: "unauthenticated" or "forbidden"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of protected operations rejected by access control.",
	},
	[]string{"kind"},
)

// ── Item metrics ──────────────────────────────────────────────────────────────

// ItemsCreatedTotal counts newly reported items.
// Label:
//   - status: initial item status ("lost", "found", …)
var ItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_created_total",
		Help:      "Total number of items reported, by initial status.",
	},
	[]string{"status"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditSource exposes dispatcher state for scraping.
type AuditSource interface {
	Dropped() uint64
	Pending() int
}

// RegisterAuditDispatcher exposes the audit dispatcher's queue depth and drop
// count. Call it once at startup.
func RegisterAuditDispatcher(src AuditSource) {
	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of security events dropped because the audit buffer was full.",
	}, func() float64 { return float64(src.Dropped()) })

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of security events waiting to be persisted.",
	}, func() float64 { return float64(src.Pending()) })
}
