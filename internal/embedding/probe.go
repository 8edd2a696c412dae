package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

const probeText = "probe: semantic matching embedder warm-up"

// Probe embeds a fixed sentence and checks the dimension. Transient failures
// are retried; a dimension mismatch fails immediately.
func Probe(ctx context.Context, e Embedder, attempts uint64, logger *slog.Logger) error {
	if attempts == 0 {
		attempts = 1
	}
	backoff := retry.WithMaxRetries(attempts-1, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err := e.Embed(ctx, probeText)
		if err != nil {
			logger.Warn("embedder probe failed", slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		if err := checkDimension(v, e.Dimension()); err != nil {
			return fmt.Errorf("embedder probe: %w", err)
		}
		return nil
	})
}
