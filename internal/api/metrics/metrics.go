// Package metrics defines and registers the custom Prometheus metrics of the
// alumni network API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alumni"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "invalid_credentials", "conflict", "invalid_input" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// GateRejectionsTotal counts requests turned away by the token gate.
// Label:
//   - reason: "missing_header", "missing_token", "invalid_token" or "forbidden_role"
var GateRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_rejections_total",
		Help:      "Total number of requests rejected by the authentication gate.",
	},
	[]string{"reason"},
)

// ── Activity feed metrics ─────────────────────────────────────────────────────

// ActivitiesProcessedTotal counts feed entries persisted.
// Label:
//   - type: activity type (e.g. "event", "mentorship")
var ActivitiesProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_processed_total",
		Help:      "Total number of activity feed entries successfully recorded.",
	},
	[]string{"type"},
)

// ActivitiesErrorsTotal counts feed entries that failed processing.
// Label:
//   - reason: "invalid_input", "insert_failed" or "queue_full"
var ActivitiesErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_errors_total",
		Help:      "Total number of activity feed entries that failed processing.",
	},
	[]string{"reason"},
)

// ActivitiesDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped), "miss" (new entry) or "error"
var ActivitiesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_dedup_total",
		Help:      "Total number of activity deduplication checks, labelled by result.",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks entries waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures dequeue-to-persistence time of one entry.
// Label:
//   - type: activity type, or "error" on failure
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// EventRegistrationsTotal counts event registration outcomes.
// Label:
//   - result: "registered", "already_registered" or "full"
var EventRegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_registrations_total",
		Help:      "Total number of event registration requests, by outcome.",
	},
	[]string{"result"},
)

// UploadsTotal counts files written to the file store.
// Labels:
//   - prefix: storage prefix ("avatars", "banners", "resources", "resumes")
//   - result: "success" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of uploaded files stored, by prefix and outcome.",
	},
	[]string{"prefix", "result"},
)
