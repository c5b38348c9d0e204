// Package metrics defines and registers the custom Prometheus metrics of the
// resource API. It is the single source of truth for metric names, labels and
// help strings. HTTP request metrics come from echoprometheus and are not
// declared here.
//
// All metrics are registered with the default registry through promauto at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "topicos"

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AccessRecordsTotal counts audit records persisted successfully.
// Labels:
//   - resource: resource type tag (e.g. "Vehicle")
//   - action: create, retrieve, update or delete
var AccessRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_records_total",
		Help:      "Total number of access records written to the audit trail.",
	},
	[]string{"resource", "action"},
)

// AccessRecordErrorsTotal counts audit records that could not be persisted.
// Label:
//   - resource: resource type tag
var AccessRecordErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_record_errors_total",
		Help:      "Total number of access records that failed to persist.",
	},
	[]string{"resource"},
)

// AccessRecordsDroppedTotal counts records discarded because the queue was full
// or the dispatcher was stopped.
var AccessRecordsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_records_dropped_total",
		Help:      "Total number of access records dropped before reaching storage.",
	},
)

// AccessQueueDepth tracks the number of records waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var AccessQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "access_queue_depth",
		Help:      "Current number of access records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AccessWriteDuration measures a single audit insert.
var AccessWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "access_write_duration_seconds",
		Help:      "Duration of a single access record insert.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthRejectionsTotal counts requests stopped by the auth or role gates.
// Label:
//   - reason: missing_token, expired, invalid, insufficient_role
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportCacheTotal counts collection report cache lookups.
// Label:
//   - result: hit, miss or error
var ReportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Total number of collection report cache lookups, labelled by result.",
	},
	[]string{"result"},
)
