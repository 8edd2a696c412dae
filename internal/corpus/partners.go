package corpus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/metrics"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

const defaultEmbedConcurrency = 4

// PartnerCorpus holds partner records with their precomputed embeddings.
// Vector i of the index belongs to Records()[i].
type PartnerCorpus struct {
	records []Partner
	index   *vector.Index
}

func EmptyPartners(dim int) *PartnerCorpus {
	return &PartnerCorpus{index: vector.Empty(dim)}
}

// NewPartnerCorpus pairs records with their vectors. index ids must be the
// record offsets 0..len(records)-1.
func NewPartnerCorpus(records []Partner, index *vector.Index) *PartnerCorpus {
	return &PartnerCorpus{records: records, index: index}
}

func (p *PartnerCorpus) Records() []Partner {
	return p.records
}

func (p *PartnerCorpus) Index() *vector.Index {
	return p.index
}

func (p *PartnerCorpus) Len() int {
	return len(p.records)
}

// LoadPartners reads the partner table and embeds every usable record once.
func (l *Loader) LoadPartners(ctx context.Context, metaPath string, emb embedding.Embedder, concurrency int) (*PartnerCorpus, error) {
	ctx, span := l.tracer.Start(ctx, "corpus.Load", trace.WithAttributes(
		attribute.String("corpus", "partners"),
		attribute.String("metadata_path", metaPath),
	))
	defer span.End()

	corpus, err := l.loadPartners(ctx, metaPath, emb, concurrency)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("records", corpus.Len()))
	metrics.CorpusRecords.WithLabelValues("partners").Set(float64(corpus.Len()))
	return corpus, nil
}

func (l *Loader) loadPartners(ctx context.Context, metaPath string, emb embedding.Embedder, concurrency int) (*PartnerCorpus, error) {
	tbl, err := readTable(metaPath, l.logger)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Info("partner corpus not found, matching will use placeholders", slog.String("path", metaPath))
			return EmptyPartners(emb.Dimension()), nil
		}
		return nil, err
	}
	if !tbl.has("name") {
		l.logger.Error("partner metadata is missing required columns",
			slog.String("path", metaPath),
			slog.String("required", "name"),
		)
		return EmptyPartners(emb.Dimension()), nil
	}

	records := make([]Partner, 0, len(tbl.rows))
	for pos, row := range tbl.rows {
		if row == nil {
			continue
		}
		rec := Partner{
			Position:      pos,
			Name:          tbl.get(row, "name"),
			Expertise:     tbl.get(row, "expertise"),
			Skills:        SplitSkills(tbl.get(row, "skills")),
			Bio:           tbl.get(row, "bio"),
			Contact:       tbl.get(row, "contact"),
			Industry:      tbl.get(row, "industry"),
			BusinessFocus: tbl.get(row, "business_focus"),
		}
		if rec.Name == "" || (rec.Expertise == "" && len(rec.Skills) == 0 && rec.Bio == "") {
			l.logger.Warn("skipping malformed corpus row",
				slog.String("path", metaPath),
				slog.Int("row", pos),
				slog.String("reason", "name and one of expertise, skills or bio are required"),
			)
			continue
		}
		records = append(records, rec)
	}

	vectors, err := embedAll(ctx, emb, records, concurrency)
	if err != nil {
		return nil, fmt.Errorf("embed partner corpus: %w", err)
	}

	ids := make([]int, len(records))
	for i := range ids {
		ids[i] = i
	}
	index, err := vector.BuildWithDimension(emb.Dimension(), ids, vectors)
	if err != nil {
		return nil, err
	}

	l.logger.Info("partner corpus loaded", slog.Int("records", len(records)))
	return NewPartnerCorpus(records, index), nil
}

func embedAll(ctx context.Context, emb embedding.Embedder, records []Partner, concurrency int) ([]vector.Vector, error) {
	if concurrency <= 0 {
		concurrency = defaultEmbedConcurrency
	}

	vectors := make([]vector.Vector, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range records {
		g.Go(func() error {
			v, err := emb.Embed(gctx, records[i].Text())
			if err != nil {
				return fmt.Errorf("record %d: %w", records[i].Position, err)
			}
			vectors[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
