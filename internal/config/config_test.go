package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.EmbeddingProvider != "hash" || cfg.EmbeddingDim != 384 {
			t.Errorf("unexpected embedding defaults %s/%d", cfg.EmbeddingProvider, cfg.EmbeddingDim)
		}
		want := filepath.Join("datasets", "processed", "startup_index.db")
		if cfg.CompetitorIndexPath != want {
			t.Errorf("expected %s, got %s", want, cfg.CompetitorIndexPath)
		}
		if cfg.Matching.CompetitorK != 2 || cfg.Matching.PartnerLimit != 3 {
			t.Errorf("unexpected matching defaults %+v", cfg.Matching)
		}
		if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
			t.Errorf("unexpected rate limit defaults %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	})

	t.Run("ProcessedDirDrivesPaths", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PROCESSED_DIR", "/data")
		os.Setenv("TREND_SIGNALS_PATH", "/elsewhere/trends.csv")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.CompetitorMetadataPath != "/data/startup_metadata.csv" {
			t.Errorf("unexpected metadata path %s", cfg.CompetitorMetadataPath)
		}
		if cfg.TrendSignalsPath != "/elsewhere/trends.csv" {
			t.Errorf("unexpected trends path %s", cfg.TrendSignalsPath)
		}
	})

	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("PORT", "9000")
		os.Setenv("EMBEDDING_DIM", "768")
		os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Port != "9000" {
			t.Errorf("expected port 9000, got %s", cfg.Port)
		}
		if cfg.EmbeddingDim != 768 {
			t.Errorf("expected dim 768, got %d", cfg.EmbeddingDim)
		}
		if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"https://a.example", "https://b.example"}) {
			t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("InvalidNumber", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("EMBEDDING_DIM", "big")
		if _, err := Load(); err == nil {
			t.Error("expected error for non-numeric EMBEDDING_DIM")
		}
	})

	t.Run("UnknownProvider", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("EMBEDDING_PROVIDER", "word2vec")
		if _, err := Load(); err == nil {
			t.Error("expected error for unknown provider")
		}
	})
}

func TestLoadProductionValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"hash rejected", map[string]string{"EMBEDDING_PROVIDER": "hash"}, true},
		{"openai without key", map[string]string{"EMBEDDING_PROVIDER": "openai"}, true},
		{"openai with key", map[string]string{"EMBEDDING_PROVIDER": "openai", "EMBEDDING_API_KEY": "sk-test"}, false},
		{"onnx without tokenizer", map[string]string{"EMBEDDING_PROVIDER": "onnx", "ONNX_MODEL_PATH": "m.onnx"}, true},
		{"onnx complete", map[string]string{"EMBEDDING_PROVIDER": "onnx", "ONNX_MODEL_PATH": "m.onnx", "ONNX_TOKENIZER_PATH": "t.json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv("APP_ENV", "prod")
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMatching(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		m, err := LoadMatching(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("expected defaults, got %v", err)
		}
		if *m != *defaultMatching() {
			t.Errorf("unexpected %+v", m)
		}
	})

	t.Run("PartialOverride", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "matching.yaml")
		if err := os.WriteFile(path, []byte("competitor_k: 5\npartner_skill_cap: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		m, err := LoadMatching(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Matching{CompetitorK: 5, PartnerLimit: 3, PartnerSkillCap: 2, EmbedConcurrency: 4}
		if *m != want {
			t.Errorf("got %+v, want %+v", *m, want)
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "matching.yaml")
		if err := os.WriteFile(path, []byte("competitor_k: [oops"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadMatching(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestCalculateCacheSize(t *testing.T) {
	tests := []struct {
		ramMB int
		want  int
	}{
		{100, -8 * 1024},
		{8192, -163 * 1024},
		{65536, -256 * 1024},
	}
	for _, tt := range tests {
		if got := calculateCacheSize(tt.ramMB); got != tt.want {
			t.Errorf("calculateCacheSize(%d) = %d, want %d", tt.ramMB, got, tt.want)
		}
	}
}

func TestGetSQLiteConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("SQLITE_CACHE_SIZE", "-2000")
	os.Setenv("SQLITE_SYNC_LEVEL", "off")
	os.Setenv("SQLITE_TEMP_STORE", "bogus")
	cfg := GetSQLiteConfig()
	if cfg.CacheSizeKB != -2000 || cfg.SyncLevel != "OFF" || cfg.TempStore != "MEMORY" {
		t.Errorf("unexpected %+v", cfg)
	}
}
