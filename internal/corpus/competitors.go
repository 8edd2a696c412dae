package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/metrics"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

var competitorColumns = []string{"name", "description", "url", "industry", "success_flag"}

// CompetitorCorpus pairs the metadata table with its vector index. Row i of
// the table is vector i of the index.
type CompetitorCorpus struct {
	records []*Competitor
	index   *vector.Index
	usable  int
}

func EmptyCompetitors(dim int) *CompetitorCorpus {
	return &CompetitorCorpus{index: vector.Empty(dim)}
}

// NewCompetitorCorpus expects records in ascending Position order.
func NewCompetitorCorpus(records []Competitor, index *vector.Index) *CompetitorCorpus {
	c := &CompetitorCorpus{index: index}
	for i := range records {
		r := records[i]
		for len(c.records) < r.Position {
			c.records = append(c.records, nil)
		}
		c.records = append(c.records, &r)
		c.usable++
	}
	return c
}

func (c *CompetitorCorpus) Index() *vector.Index {
	return c.index
}

// Lookup resolves an index id to its metadata row. Ids outside the table or
// pointing at a skipped row report false.
func (c *CompetitorCorpus) Lookup(id int) (Competitor, bool) {
	if id < 0 || id >= len(c.records) || c.records[id] == nil {
		return Competitor{}, false
	}
	return *c.records[id], true
}

// Len is the number of usable metadata records.
func (c *CompetitorCorpus) Len() int {
	return c.usable
}

func (c *CompetitorCorpus) Available() bool {
	return c.usable > 0 && c.index.Len() > 0
}

// LoadCompetitors reads the metadata table and the index store. A missing
// file at either path yields an empty corpus and no error. An error means an
// artifact exists but could not be read.
func (l *Loader) LoadCompetitors(ctx context.Context, metaPath, indexPath string, emb embedding.Embedder) (*CompetitorCorpus, error) {
	ctx, span := l.tracer.Start(ctx, "corpus.Load", trace.WithAttributes(
		attribute.String("corpus", "competitors"),
		attribute.String("metadata_path", metaPath),
		attribute.String("index_path", indexPath),
	))
	defer span.End()

	corpus, err := l.loadCompetitors(ctx, metaPath, indexPath, emb)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("records", corpus.Len()),
		attribute.Int("vectors", corpus.index.Len()),
	)
	metrics.CorpusRecords.WithLabelValues("competitors").Set(float64(corpus.Len()))
	return corpus, nil
}

func (l *Loader) loadCompetitors(ctx context.Context, metaPath, indexPath string, emb embedding.Embedder) (*CompetitorCorpus, error) {
	empty := EmptyCompetitors(emb.Dimension())

	for _, path := range []string{metaPath, indexPath} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				l.logger.Info("competitor corpus not found, matching will use placeholders", slog.String("path", path))
				return empty, nil
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	records, rows, err := l.readCompetitors(metaPath)
	if err != nil {
		return nil, err
	}
	if records == nil {
		return empty, nil
	}

	store, err := vector.OpenStore(indexPath, true)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	info, err := store.Info(ctx)
	if err != nil {
		return nil, err
	}
	if info.Dimension != emb.Dimension() {
		l.logger.Error("competitor index dimension does not match embedder",
			slog.String("path", indexPath),
			slog.Int("index_dimension", info.Dimension),
			slog.Int("embedder_dimension", emb.Dimension()),
		)
		return empty, nil
	}
	if info.ModelID != emb.ModelID() {
		l.logger.Warn("competitor index was built with a different model",
			slog.String("path", indexPath),
			slog.String("index_model", info.ModelID),
			slog.String("embedder_model", emb.ModelID()),
		)
	}

	ids, vectors, err := store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	index, err := vector.BuildWithDimension(info.Dimension, ids, vectors)
	if err != nil {
		l.logger.Error("competitor index is inconsistent", slog.String("path", indexPath), slog.String("error", err.Error()))
		return empty, nil
	}

	corpus := NewCompetitorCorpus(records, index)
	if rows != index.Len() {
		l.logger.Warn("competitor index and metadata differ in length",
			slog.Int("metadata_rows", rows),
			slog.Int("vectors", index.Len()),
		)
	}

	l.logger.Info("competitor corpus loaded",
		slog.Int("records", corpus.Len()),
		slog.Int("vectors", index.Len()),
		slog.String("model_id", info.ModelID),
	)
	return corpus, nil
}

// readCompetitors returns the usable records and the number of data rows.
// Records are nil when the table lacks required columns.
func (l *Loader) readCompetitors(path string) ([]Competitor, int, error) {
	tbl, err := readTable(path, l.logger)
	if err != nil {
		return nil, 0, err
	}
	if !tbl.has("name") || !tbl.has("description") {
		l.logger.Error("competitor metadata is missing required columns",
			slog.String("path", path),
			slog.String("required", "name,description"),
		)
		return nil, 0, nil
	}

	records := make([]Competitor, 0, len(tbl.rows))
	for pos, row := range tbl.rows {
		if row == nil {
			continue
		}
		rec := Competitor{
			Position:    pos,
			Name:        tbl.get(row, "name"),
			Description: tbl.get(row, "description"),
			URL:         tbl.get(row, "url"),
			Industry:    tbl.get(row, "industry"),
			SuccessFlag: tbl.get(row, "success_flag"),
		}
		if rec.Name == "" || rec.Description == "" {
			l.logger.Warn("skipping malformed corpus row",
				slog.String("path", path),
				slog.Int("row", pos),
				slog.String("reason", "name and description are required"),
			)
			continue
		}
		records = append(records, rec)
	}
	return records, len(tbl.rows), nil
}

// WriteCompetitors writes records in order. Positions are not stored; the row
// order is the position.
func WriteCompetitors(path string, records []Competitor) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Name, r.Description, r.URL, r.Industry, r.SuccessFlag}
	}
	if err := writeTable(path, competitorColumns, rows); err != nil {
		return fmt.Errorf("write competitor metadata: %w", err)
	}
	return nil
}

func successFlag(v string) string {
	if v == "" {
		return "0"
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return v
}
