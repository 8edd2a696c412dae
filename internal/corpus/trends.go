package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/PauloHFS/bizbloom/internal/metrics"
)

var trendColumns = []string{"industry", "trend"}

// LoadTrends reads trend_signals.csv. A missing file yields no trends.
func (l *Loader) LoadTrends(ctx context.Context, path string) ([]Trend, error) {
	_, span := l.tracer.Start(ctx, "corpus.Load", trace.WithAttributes(
		attribute.String("corpus", "trends"),
		attribute.String("metadata_path", path),
	))
	defer span.End()

	tbl, err := readTable(path, l.logger)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Info("trend signals not found", slog.String("path", path))
			return []Trend{}, nil
		}
		span.RecordError(err)
		return nil, err
	}

	trends := make([]Trend, 0, len(tbl.rows))
	for pos, row := range tbl.rows {
		if row == nil {
			continue
		}
		t := Trend{Industry: tbl.get(row, "industry"), Trend: tbl.get(row, "trend")}
		if t.Industry == "" || t.Trend == "" {
			l.logger.Warn("skipping malformed corpus row",
				slog.String("path", path),
				slog.Int("row", pos),
				slog.String("reason", "industry and trend are required"),
			)
			continue
		}
		trends = append(trends, t)
	}

	span.SetAttributes(attribute.Int("records", len(trends)))
	metrics.CorpusRecords.WithLabelValues("trends").Set(float64(len(trends)))
	return trends, nil
}

func WriteTrends(path string, trends []Trend) error {
	rows := make([][]string, len(trends))
	for i, t := range trends {
		rows[i] = []string{t.Industry, t.Trend}
	}
	if err := writeTable(path, trendColumns, rows); err != nil {
		return fmt.Errorf("write trend signals: %w", err)
	}
	return nil
}
