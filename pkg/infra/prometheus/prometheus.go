package prometheus

import (
	"slices"

	"github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Judgment latency buckets in seconds; vision calls usually take 1-10s.
	latencyBuckets = []float64{
		0.1, 0.25, 0.5,
		1, 2.5, 5,
		10, 20, 30, 60,
	}

	ModerationDecisions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_moderation_decisions_total",
			Help: "Total number of moderation decisions by status and violation category",
		},
		[]string{"status", "violation_category"},
	)

	JudgmentLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentguard_judgment_latency_seconds",
			Help:    "Latency of moderation judgments including parsing and policy",
			Buckets: latencyBuckets,
		},
		[]string{"provider"},
	)

	JudgmentFailures = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_judgment_failures_total",
			Help: "Judgments that resolved to a fail-closed result instead of a model decision",
		},
		[]string{"provider", "reason"},
	)

	HTTPRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentguard_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)

// Initialize registers runtime collectors and makes the private registry the
// default gatherer for promhttp.
func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

func Gatherer() prometheus.Gatherer {
	return registry
}

// ViolationCategoryLabel bounds the violation_category label. Model supplied
// categories outside the canonical critical set collapse to "other".
func ViolationCategoryLabel(category string) string {
	switch {
	case category == "":
		return "none"
	case category == moderation.ViolationSystemError:
		return category
	case slices.Contains(moderation.CriticalViolations, category):
		return category
	default:
		return "other"
	}
}
