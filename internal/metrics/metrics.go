package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"path", "method", "status"})

	EmbeddingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "embedding_duration_seconds",
		Help:    "Time taken to embed a single text",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"provider", "status"})

	EmbeddingCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "embedding_cache_total",
		Help: "Embedding cache lookups by result",
	}, []string{"result"})

	MatchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_requests_total",
		Help: "Total number of match requests by outcome",
	}, []string{"matcher", "outcome"})

	MatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "match_duration_seconds",
		Help: "Time taken to run a matcher",
	}, []string{"matcher"})

	MatchFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_fallbacks_total",
		Help: "Total number of placeholder substitutions by reason",
	}, []string{"matcher", "reason"})

	CorpusRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "corpus_records",
		Help: "Number of usable records in each loaded corpus",
	}, []string{"corpus"})
)
