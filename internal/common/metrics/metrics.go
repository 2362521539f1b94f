package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trini_queries_processed_total",
			Help: "Total number of queries processed, by classified intent",
		},
		[]string{"intent", "fallback"},
	)

	DecodeTier = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trini_decode_tier_total",
			Help: "Model response decode attempts by tier (direct, extracted, fallback)",
		},
		[]string{"tier"},
	)

	FallbackActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trini_fallback_activations_total",
			Help: "Fallback engine activations by failure category",
		},
		[]string{"category"},
	)

	CatalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trini_catalog_lookups_total",
			Help: "Per-title catalog lookups by outcome (hit, miss, error)",
		},
		[]string{"outcome"},
	)

	VerificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "trini_verification_duration_seconds",
			Help: "Duration of the grounding verification fan-out in seconds",
		},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trini_rate_limit_hits_total",
			Help: "Number of requests rejected by the per-user rate limiter",
		},
	)
)
