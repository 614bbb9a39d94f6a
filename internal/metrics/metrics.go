// Package metrics provides Prometheus metrics for the bookmirror
// daemon.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookmarkEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmirror_bookmark_events_total",
			Help: "Bookmark events processed, by type",
		},
		[]string{"type"},
	)

	historyEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmirror_history_events_total",
			Help: "History events processed, by type",
		},
		[]string{"type"},
	)

	eventErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmirror_event_errors_total",
			Help: "Event handler failures, by type",
		},
		[]string{"type"},
	)

	registryFolders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookmirror_registry_folders",
			Help: "Folder entries currently in the registry",
		},
	)

	filterMatches = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookmirror_filter_matches",
			Help: "Node IDs in the active filter match set",
		},
	)

	resyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookmirror_resync_duration_seconds",
			Help:    "Time for a full tree + history resync",
			Buckets: prometheus.DefBuckets,
		},
	)

	streamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookmirror_stream_subscribers",
			Help: "Active change-stream subscribers",
		},
	)

	streamEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmirror_stream_events_total",
			Help: "Change notifications published, by type",
		},
		[]string{"type"},
	)
)

func RecordBookmarkEvent(eventType string) {
	bookmarkEventsTotal.WithLabelValues(eventType).Inc()
}

func RecordHistoryEvent(eventType string) {
	historyEventsTotal.WithLabelValues(eventType).Inc()
}

func RecordEventError(eventType string) {
	eventErrorsTotal.WithLabelValues(eventType).Inc()
}

func SetRegistryFolders(n int) {
	registryFolders.Set(float64(n))
}

func SetFilterMatches(n int) {
	filterMatches.Set(float64(n))
}

func ObserveResyncDuration(d time.Duration) {
	resyncDuration.Observe(d.Seconds())
}

func SetStreamSubscribers(n int) {
	streamSubscribers.Set(float64(n))
}

func RecordStreamEvent(eventType string) {
	streamEventsTotal.WithLabelValues(eventType).Inc()
}
