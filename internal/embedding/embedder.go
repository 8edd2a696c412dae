package embedding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/PauloHFS/bizbloom/internal/vector"
)

// Provider identifies an embedding backend.
type Provider string

const (
	// ProviderHash is a deterministic hashed-token embedder. It is not semantic
	// and is meant for development and tests.
	ProviderHash   Provider = "hash"
	ProviderONNX   Provider = "onnx"
	ProviderOpenAI Provider = "openai"
)

const DefaultDimension = 384

var (
	ErrEmptyVector       = errors.New("embedder returned an empty vector")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrUnknownProvider   = errors.New("unknown embedding provider")
)

// Embedder maps text to a fixed-dimension vector. Implementations are
// deterministic for a fixed model and safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) (vector.Vector, error)
	Dimension() int
	ModelID() string
}

// Batcher is implemented by embedders that can embed several texts per call.
type Batcher interface {
	EmbedBatch(ctx context.Context, texts []string) ([]vector.Vector, error)
}

// AsBatcher looks through the cache and metrics wrappers for a provider that
// batches.
func AsBatcher(e Embedder) (Batcher, bool) {
	for e != nil {
		if b, ok := e.(Batcher); ok {
			return b, true
		}
		u, ok := e.(interface{ Unwrap() Embedder })
		if !ok {
			return nil, false
		}
		e = u.Unwrap()
	}
	return nil, false
}

type Config struct {
	Provider  Provider
	Model     string
	Dimension int
	CacheSize int
	ONNX      ONNXConfig
	Remote    RemoteConfig
}

// New builds the configured provider wrapped with metrics and, when CacheSize
// is positive, an LRU cache.
func New(cfg Config, logger *slog.Logger) (Embedder, error) {
	if cfg.Dimension <= 0 {
		cfg.Dimension = DefaultDimension
	}

	var (
		base Embedder
		err  error
	)
	switch cfg.Provider {
	case ProviderHash, "":
		base = NewHash(cfg.Dimension)
	case ProviderONNX:
		onnxCfg := cfg.ONNX
		onnxCfg.ModelID = cfg.Model
		onnxCfg.Dimension = cfg.Dimension
		base, err = NewONNX(onnxCfg)
	case ProviderOpenAI:
		remoteCfg := cfg.Remote
		remoteCfg.Model = cfg.Model
		remoteCfg.Dimension = cfg.Dimension
		base, err = NewRemote(remoteCfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s embedder: %w", cfg.Provider, err)
	}

	provider := cfg.Provider
	if provider == "" {
		provider = ProviderHash
	}

	var emb Embedder = Instrument(base, string(provider))
	if cfg.CacheSize > 0 {
		emb, err = NewCached(emb, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
	}

	logger.Info("embedder initialized",
		slog.String("provider", string(provider)),
		slog.String("model_id", emb.ModelID()),
		slog.Int("dimension", emb.Dimension()),
		slog.Int("cache_size", cfg.CacheSize),
	)
	return emb, nil
}

// Close releases provider resources if the embedder holds any.
func Close(e Embedder) error {
	if c, ok := e.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func checkDimension(v vector.Vector, want int) error {
	if len(v) == 0 {
		return ErrEmptyVector
	}
	if len(v) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), want)
	}
	return nil
}
