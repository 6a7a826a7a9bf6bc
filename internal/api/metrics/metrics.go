// Package metrics defines and registers all custom Prometheus metrics for the
// matchme web frontend. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "matchme_web"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls made to the backend API.
// Labels:
//   - route: the route pattern called (e.g. "GET /api/user")
//   - outcome: "ok", "request_error", "network_error" or "decode_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by route and outcome.",
	},
	[]string{"route", "outcome"},
)

// BackendRequestDuration measures the round trip of a single backend call.
// Label:
//   - route: the route pattern called
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── Page metrics ──────────────────────────────────────────────────────────────

// PageSavesTotal counts save attempts made from edit pages.
// Labels:
//   - page: "bio", "preference", "profile" or "weight"
//   - field: the field or kind being saved
//   - result: "ok", "invalid" (blocked client side) or "error"
var PageSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_saves_total",
		Help:      "Total number of page save attempts, by page, field and result.",
	},
	[]string{"page", "field", "result"},
)

// GuardRedirectsTotal counts visits to protected pages without a session.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of protected page visits redirected to login.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - action: "login" or "register"
//   - result: "ok", "invalid" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login and registration attempts.",
	},
	[]string{"action", "result"},
)
