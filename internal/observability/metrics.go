// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the registry.
type Metrics struct {
	// Registry operation metrics
	CollectionsCreated prometheus.Counter
	TokensMinted       prometheus.Counter
	BatchMints         *prometheus.HistogramVec
	TokensTransferred  prometheus.Counter
	TokensBurned       prometheus.Counter
	MetadataUpdates    prometheus.Counter
	CapsTransferred    prometheus.Counter
	OperationErrors    *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec

	// Event metrics
	EventsEmitted  *prometheus.CounterVec
	EventSinkError prometheus.Counter

	// Feed metrics
	FeedClients      prometheus.Gauge
	FeedMessagesSent prometheus.Counter
	FeedSendErrors   prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tzar_nft_registry"
	}

	return &Metrics{
		CollectionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "collections_created_total",
			Help:      "Total number of collections created",
		}),
		TokensMinted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "tokens_minted_total",
			Help:      "Total number of tokens minted",
		}),
		BatchMints: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "batch_mint_size",
			Help:      "Distribution of batch mint sizes",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}, []string{"status"}),
		TokensTransferred: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "tokens_transferred_total",
			Help:      "Total number of token transfers",
		}),
		TokensBurned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "tokens_burned_total",
			Help:      "Total number of tokens burned",
		}),
		MetadataUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "metadata_updates_total",
			Help:      "Total number of token metadata updates",
		}),
		CapsTransferred: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "mint_caps_transferred_total",
			Help:      "Total number of mint capability transfers",
		}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operation_errors_total",
			Help:      "Total number of failed operations by kind",
		}, []string{"operation", "error_kind"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operation_duration_seconds",
			Help:      "Registry operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),

		EventsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Total number of events emitted by type",
		}, []string{"event_type"}),
		EventSinkError: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "sink_errors_total",
			Help:      "Total number of event sink delivery errors",
		}),

		FeedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "clients",
			Help:      "Number of connected websocket feed clients",
		}),
		FeedMessagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "messages_sent_total",
			Help:      "Total number of feed messages sent to clients",
		}),
		FeedSendErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "send_errors_total",
			Help:      "Total number of feed write errors",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
