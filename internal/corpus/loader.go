package corpus

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/PauloHFS/bizbloom/internal/corpus"

// Loader reads corpus artifacts from the processed data directory.
type Loader struct {
	logger *slog.Logger
	tracer trace.Tracer
}

func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{
		logger: logger.With(slog.String("component", "corpus")),
		tracer: otel.Tracer(tracerName),
	}
}
