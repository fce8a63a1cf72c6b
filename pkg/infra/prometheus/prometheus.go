package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAllow       = "allow"
	OutcomeBlock       = "block"
	OutcomeUnavailable = "unavailable"
	OutcomeSkipped     = "skipped"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	VerdictsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "spamshield_verdicts_total",
			Help: "Total number of submission checks by submission type and outcome",
		},
		[]string{"type", "outcome"},
	)

	RemoteLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spamshield_remote_latency_ms",
			Help:    "Verdict service latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method"},
	)

	StorefrontRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "spamshield_storefront_requests_total",
			Help: "Total number of storefront form requests",
		},
		[]string{"form", "status"},
	)
)

type MetricsConfig struct {
	EnableLatency bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency: true,
	}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Gatherer exposes the private registry, mainly for tests.
func Gatherer() prometheus.Gatherer {
	return registry
}

func RecordVerdict(submissionType, outcome string) {
	VerdictsTotal.WithLabelValues(submissionType, outcome).Inc()
}

func ObserveRemoteLatency(method string, ms float64) {
	if !Config.EnableLatency {
		return
	}
	RemoteLatency.WithLabelValues(method).Observe(ms)
}
