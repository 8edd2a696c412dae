package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port    string
	Env     string // "dev" or "prod"
	Version string

	ProcessedDir           string
	CompetitorMetadataPath string
	CompetitorIndexPath    string
	PartnerMetadataPath    string
	TrendSignalsPath       string

	EmbeddingProvider  string
	EmbeddingModel     string
	EmbeddingDim       int
	EmbeddingCacheSize int
	EmbeddingBaseURL   string
	EmbeddingAPIKey    string

	ONNXModelPath     string
	ONNXTokenizerPath string
	ONNXRuntimeLib    string
	ONNXMaxSeqLen     int

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	TracesExporter string

	Matching Matching
}

// Matching holds the matcher tunables read from MATCHING_CONFIG.
type Matching struct {
	CompetitorK      int `yaml:"competitor_k"`
	PartnerLimit     int `yaml:"partner_limit"`
	PartnerSkillCap  int `yaml:"partner_skill_cap"`
	EmbedConcurrency int `yaml:"embed_concurrency"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	processed := getEnv("PROCESSED_DIR", "./datasets/processed")

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("APP_ENV", "dev"),
		Version: getEnv("VERSION", "dev"),

		ProcessedDir:           processed,
		CompetitorMetadataPath: getEnv("COMPETITOR_METADATA_PATH", filepath.Join(processed, "startup_metadata.csv")),
		CompetitorIndexPath:    getEnv("COMPETITOR_INDEX_PATH", filepath.Join(processed, "startup_index.db")),
		PartnerMetadataPath:    getEnv("PARTNER_METADATA_PATH", filepath.Join(processed, "partner_profiles.csv")),
		TrendSignalsPath:       getEnv("TREND_SIGNALS_PATH", filepath.Join(processed, "trend_signals.csv")),

		EmbeddingProvider: strings.ToLower(getEnv("EMBEDDING_PROVIDER", "hash")),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingAPIKey:   os.Getenv("EMBEDDING_API_KEY"),

		ONNXModelPath:     os.Getenv("ONNX_MODEL_PATH"),
		ONNXTokenizerPath: os.Getenv("ONNX_TOKENIZER_PATH"),
		ONNXRuntimeLib:    os.Getenv("ONNXRUNTIME_LIB"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TracesExporter:     strings.ToLower(getEnv("OTEL_TRACES_EXPORTER", "none")),
	}

	var err error
	if cfg.EmbeddingDim, err = getEnvInt("EMBEDDING_DIM", 384); err != nil {
		return nil, err
	}
	if cfg.EmbeddingCacheSize, err = getEnvInt("EMBEDDING_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.ONNXMaxSeqLen, err = getEnvInt("ONNX_MAX_SEQ_LEN", 256); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}

	m, err := LoadMatching(os.Getenv("MATCHING_CONFIG"))
	if err != nil {
		return nil, err
	}
	cfg.Matching = *m

	switch cfg.EmbeddingProvider {
	case "hash", "onnx", "openai":
	default:
		return nil, fmt.Errorf("EMBEDDING_PROVIDER inválido: %q", cfg.EmbeddingProvider)
	}

	// Validação Estrita para Produção
	if cfg.Env == "prod" {
		switch cfg.EmbeddingProvider {
		case "hash":
			return nil, fmt.Errorf("produção: EMBEDDING_PROVIDER=hash não é semântico, use onnx ou openai")
		case "openai":
			if cfg.EmbeddingAPIKey == "" {
				return nil, fmt.Errorf("produção: EMBEDDING_API_KEY é obrigatório")
			}
		case "onnx":
			if cfg.ONNXModelPath == "" {
				return nil, fmt.Errorf("produção: ONNX_MODEL_PATH é obrigatório")
			}
			if cfg.ONNXTokenizerPath == "" {
				return nil, fmt.Errorf("produção: ONNX_TOKENIZER_PATH é obrigatório")
			}
		}
	}

	return cfg, nil
}

// LoadMatching reads the matcher tunables. An empty path or a missing file
// yields the defaults.
func LoadMatching(path string) (*Matching, error) {
	if path == "" {
		return defaultMatching(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultMatching(), nil
		}
		return nil, err
	}

	var m Matching
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("MATCHING_CONFIG %s: %w", path, err)
	}
	applyMatchingDefaults(&m)
	return &m, nil
}

func defaultMatching() *Matching {
	m := &Matching{}
	applyMatchingDefaults(m)
	return m
}

func applyMatchingDefaults(m *Matching) {
	if m.CompetitorK <= 0 {
		m.CompetitorK = 2
	}
	if m.PartnerLimit <= 0 {
		m.PartnerLimit = 3
	}
	if m.PartnerSkillCap <= 0 {
		m.PartnerSkillCap = 4
	}
	if m.EmbedConcurrency <= 0 {
		m.EmbedConcurrency = 4
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser um inteiro: %w", key, err)
	}
	return i, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser um número: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
