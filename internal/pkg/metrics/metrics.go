// Package metrics defines and registers all custom Prometheus metrics for the
// cement tracking API. It is the single source of truth for metric names,
// labels, and help strings. Metrics are registered with the default registry
// at package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cement_tracking"

// ── Delivery metrics ──────────────────────────────────────────────────────────

// DeliveriesCreatedTotal counts newly created deliveries.
// Label:
//   - cement_type: the cement type of the delivery (e.g. "CP-II")
var DeliveriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_created_total",
		Help:      "Total number of deliveries created, by cement type.",
	},
	[]string{"cement_type"},
)

// StatusTransitionsTotal counts applied status transitions.
// Labels:
//   - from: the previous delivery status
//   - to: the new delivery status
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of successful delivery status transitions.",
	},
	[]string{"from", "to"},
)

// TrackingUpdatesTotal counts appended ledger entries.
// Label:
//   - kind: "status" or "location"
var TrackingUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_updates_total",
		Help:      "Total number of tracking updates appended to the ledger.",
	},
	[]string{"kind"},
)

// ── Geocoding metrics ─────────────────────────────────────────────────────────

// GeocodingRequestsTotal counts calls to the geocoding provider.
// Labels:
//   - operation: "forward" or "reverse"
//   - result: "ok", "not_found" or "error"
var GeocodingRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocoding_requests_total",
		Help:      "Total number of geocoding provider requests, by operation and result.",
	},
	[]string{"operation", "result"},
)

// GeocodingDuration measures provider round-trip time.
// Label:
//   - operation: "forward" or "reverse"
var GeocodingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "geocoding_duration_seconds",
		Help:      "Duration of geocoding provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// GeocodeCacheTotal counts geocode cache decisions.
// Label:
//   - result: "hit" or "miss"
var GeocodeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_cache_total",
		Help:      "Total number of geocode cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Public tracking metrics ───────────────────────────────────────────────────

// PublicLookupsTotal counts public tracking-code lookups.
// Label:
//   - result: "found" or "not_found"
var PublicLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_lookups_total",
		Help:      "Total number of public tracking-code lookups, by result.",
	},
	[]string{"result"},
)
