package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Message-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptkeep",
			Subsystem: "message_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptkeep",
			Subsystem: "message_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Archived history snapshots
	MessageArchivesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promptkeep",
			Subsystem: "message_api",
			Name:      "message_archives_total",
			Help:      "Total history snapshots written by message updates",
		},
	)

	// Persona name collisions
	PersonaConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promptkeep",
			Subsystem: "message_api",
			Name:      "persona_conflicts_total",
			Help:      "Total persona writes rejected by name uniqueness",
		},
	)

	// DB query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptkeep",
			Subsystem: "message_api",
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"query_type"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordMessageArchive records one archived history snapshot
func RecordMessageArchive() {
	MessageArchivesTotal.Inc()
}

// RecordPersonaConflict records a rejected persona write
func RecordPersonaConflict() {
	PersonaConflictsTotal.Inc()
}

// RecordDBQuery records a database query
func RecordDBQuery(queryType string, durationSec float64) {
	DBQueryDuration.WithLabelValues(queryType).Observe(durationSec)
}
