package cmd

import (
	"log/slog"
	"time"

	"github.com/PauloHFS/bizbloom/internal/config"
	"github.com/PauloHFS/bizbloom/internal/embedding"
)

const probeAttempts = 3

func embeddingConfig(cfg *config.Config) embedding.Config {
	return embedding.Config{
		Provider:  embedding.Provider(cfg.EmbeddingProvider),
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDim,
		CacheSize: cfg.EmbeddingCacheSize,
		ONNX: embedding.ONNXConfig{
			SharedLibraryPath: cfg.ONNXRuntimeLib,
			ModelPath:         cfg.ONNXModelPath,
			TokenizerPath:     cfg.ONNXTokenizerPath,
			MaxSeqLen:         cfg.ONNXMaxSeqLen,
		},
		Remote: embedding.RemoteConfig{
			BaseURL: cfg.EmbeddingBaseURL,
			APIKey:  cfg.EmbeddingAPIKey,
			Timeout: 30 * time.Second,
		},
	}
}

func newEmbedder(cfg *config.Config, logger *slog.Logger) (embedding.Embedder, error) {
	return embedding.New(embeddingConfig(cfg), logger)
}
