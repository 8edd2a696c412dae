package embedding

import (
	"context"
	"time"

	"github.com/PauloHFS/bizbloom/internal/metrics"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

type instrumented struct {
	next     Embedder
	provider string
}

// Instrument records embedding_duration_seconds for every call.
func Instrument(next Embedder, provider string) Embedder {
	return &instrumented{next: next, provider: provider}
}

func (i *instrumented) Dimension() int {
	return i.next.Dimension()
}

func (i *instrumented) ModelID() string {
	return i.next.ModelID()
}

func (i *instrumented) Embed(ctx context.Context, text string) (vector.Vector, error) {
	start := time.Now()
	v, err := i.next.Embed(ctx, text)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.EmbeddingDuration.WithLabelValues(i.provider, status).Observe(time.Since(start).Seconds())
	return v, err
}

func (i *instrumented) Unwrap() Embedder {
	return i.next
}

func (i *instrumented) Close() error {
	return Close(i.next)
}
