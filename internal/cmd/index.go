package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/PauloHFS/bizbloom/internal/config"
	"github.com/PauloHFS/bizbloom/internal/corpus"
	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/logging"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

const (
	metadataFile = "startup_metadata.csv"
	indexFile    = "startup_index.db"
	trendsFile   = "trend_signals.csv"
)

var defaultInputs = []string{
	"datasets/business-ideas-generated-with-gpt3.csv",
	"datasets/startup-success-prediction.csv",
	"datasets/global-startup-success-dataset.csv",
}

// embedBatchSize caps how many descriptions go into one provider request.
const embedBatchSize = 64

var ErrNoInputs = errors.New("no readable input datasets")

type BuildResult struct {
	Records int
	Trends  int
	ModelID string
	OutDir  string
}

// RunBuildIndex handles `build-index [-out dir] [-inputs a.csv,b.csv]`.
func RunBuildIndex(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init()
	logger := logging.Get()

	fs := flag.NewFlagSet("build-index", flag.ExitOnError)
	out := fs.String("out", cfg.ProcessedDir, "directory for the processed corpus")
	inputs := fs.String("inputs", strings.Join(defaultInputs, ","), "comma separated raw dataset CSVs")
	_ = fs.Parse(args)

	emb, err := newEmbedder(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize embedder", "error", err)
		os.Exit(1)
	}
	defer embedding.Close(emb)

	ctx := context.Background()
	res, err := BuildIndex(ctx, emb, splitInputs(*inputs), *out, cfg.Matching.EmbedConcurrency, logger)
	if err != nil {
		logger.Error("build-index failed", "error", err)
		os.Exit(1)
	}

	logger.Info("corpus processed",
		"records", res.Records,
		"trends", res.Trends,
		"model_id", res.ModelID,
		"out", res.OutDir,
	)
}

func splitInputs(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BuildIndex normalises the raw datasets, embeds every description and writes
// the metadata table, the vector store and the trend signals into outDir.
// Missing or unreadable inputs are skipped; at least one must load.
func BuildIndex(ctx context.Context, emb embedding.Embedder, inputs []string, outDir string, concurrency int, logger *slog.Logger) (BuildResult, error) {
	var records []corpus.Competitor
	loaded := 0
	for _, path := range inputs {
		recs, err := corpus.ReadRaw(path, logger)
		if err != nil {
			logger.Warn("skipping input dataset", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		loaded++
		records = append(records, recs...)
	}
	if loaded == 0 {
		return BuildResult{}, ErrNoInputs
	}
	corpus.Renumber(records)

	vectors, err := embedDescriptions(ctx, emb, records, concurrency)
	if err != nil {
		return BuildResult{}, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return BuildResult{}, fmt.Errorf("create output dir: %w", err)
	}

	if err := writeStore(ctx, filepath.Join(outDir, indexFile), emb, vectors, logger); err != nil {
		return BuildResult{}, err
	}
	if err := corpus.WriteCompetitors(filepath.Join(outDir, metadataFile), records); err != nil {
		return BuildResult{}, err
	}
	trends := corpus.TrendSignals(records)
	if err := corpus.WriteTrends(filepath.Join(outDir, trendsFile), trends); err != nil {
		return BuildResult{}, err
	}

	return BuildResult{
		Records: len(records),
		Trends:  len(trends),
		ModelID: emb.ModelID(),
		OutDir:  outDir,
	}, nil
}

func embedDescriptions(ctx context.Context, emb embedding.Embedder, records []corpus.Competitor, concurrency int) ([]vector.Vector, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	vectors := make([]vector.Vector, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	if b, ok := embedding.AsBatcher(emb); ok {
		for start := 0; start < len(records); start += embedBatchSize {
			end := min(start+embedBatchSize, len(records))
			g.Go(func() error {
				texts := make([]string, 0, end-start)
				for _, r := range records[start:end] {
					texts = append(texts, r.Description)
				}
				batch, err := b.EmbedBatch(gctx, texts)
				if err != nil {
					return fmt.Errorf("embed rows %d-%d: %w", records[start].Position, records[end-1].Position, err)
				}
				copy(vectors[start:end], batch)
				return nil
			})
		}
	} else {
		for i := range records {
			g.Go(func() error {
				v, err := emb.Embed(gctx, records[i].Description)
				if err != nil {
					return fmt.Errorf("embed row %d: %w", records[i].Position, err)
				}
				vectors[i] = v
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func writeStore(ctx context.Context, path string, emb embedding.Embedder, vectors []vector.Vector, logger *slog.Logger) error {
	store, err := vector.OpenStore(path, false)
	if err != nil {
		return err
	}
	defer store.Close()

	// pragmas valem por conexão
	store.DB().SetMaxOpenConns(1)
	if err := config.GetSQLiteConfig().ApplyPragmas(store.DB()); err != nil {
		return err
	}

	cfg := vector.Config{Dimension: emb.Dimension(), ModelID: emb.ModelID()}
	if err := store.Write(ctx, cfg, vectors); err != nil {
		return fmt.Errorf("write index store: %w", err)
	}

	version, err := store.Version(ctx)
	if err != nil {
		return fmt.Errorf("read sqlite-vec version: %w", err)
	}
	logger.Info("index store written",
		slog.String("path", path),
		slog.Int("vectors", len(vectors)),
		slog.String("sqlite_vec", version),
	)
	return nil
}
