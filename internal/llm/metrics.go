package llm

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_request_duration_seconds",
		Help:    "Embedding provider request duration in seconds",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "model", "status"})

	llmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_requests_total",
		Help: "Total number of embedding provider requests",
	}, []string{"method", "model"})

	llmErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_errors_total",
		Help: "Total number of embedding provider errors",
	}, []string{"method", "model", "error_type"})

	llmTokensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Total number of tokens billed by the embedding provider",
	}, []string{"method", "model", "token_type"})
)

func recordRequest(method, model, status string, duration time.Duration) {
	llmRequestDuration.WithLabelValues(method, model, status).Observe(duration.Seconds())
	llmRequestsTotal.WithLabelValues(method, model).Inc()
}

func recordError(method, model, errorType string) {
	llmErrorsTotal.WithLabelValues(method, model, errorType).Inc()
}

func recordTokens(method, model string, usage Usage) {
	if usage.PromptTokens > 0 {
		llmTokensTotal.WithLabelValues(method, model, "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.TotalTokens > 0 {
		llmTokensTotal.WithLabelValues(method, model, "total").Add(float64(usage.TotalTokens))
	}
}

// MetricsMiddleware records request, error and token metrics around any
// EmbeddingClient.
type MetricsMiddleware struct {
	client EmbeddingClient
	model  string
}

func (c *Client) WithMetrics() *MetricsMiddleware {
	return &MetricsMiddleware{client: c, model: c.model}
}

func (m *MetricsMiddleware) Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error) {
	start := time.Now()
	model := req.Model
	if model == "" {
		model = m.model
	}
	status := "success"

	resp, err := m.client.Embed(ctx, req)
	if err != nil {
		status = "error"
	}

	recordRequest("embed", model, status, time.Since(start))

	if err != nil {
		recordError("embed", model, classifyError(err))
	} else if resp != nil {
		recordTokens("embed", model, resp.Usage)
	}

	return resp, err
}

func classifyError(err error) string {
	if err == nil {
		return "none"
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	if IsAuthError(err) {
		return "auth"
	}
	if IsRateLimitError(err) {
		return "rate_limit"
	}
	if IsTimeoutError(err) {
		return "timeout"
	}
	if IsInvalidRequestError(err) {
		return "client_error"
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return "client_error"
		}
		if apiErr.StatusCode >= 500 {
			return "server_error"
		}
	}

	return "unknown"
}
