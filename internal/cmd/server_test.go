package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PauloHFS/bizbloom/internal/config"
	"github.com/PauloHFS/bizbloom/internal/corpus"
	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/logging"
	"github.com/PauloHFS/bizbloom/internal/matching"
	"github.com/PauloHFS/bizbloom/internal/middleware"
	"github.com/PauloHFS/bizbloom/internal/routes"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logging.InitWithWriter(io.Discard, slog.LevelError)

	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.csv")
	if err := os.WriteFile(raw, []byte(rawIdeas), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "processed")
	emb := embedding.NewHash(64)
	if _, err := BuildIndex(context.Background(), emb, []string{raw}, out, 2, discardLogger()); err != nil {
		t.Fatal(err)
	}

	svc := matching.NewService(emb, corpus.NewLoader(discardLogger()), discardLogger(), matching.Options{
		CompetitorMetadataPath: filepath.Join(out, metadataFile),
		CompetitorIndexPath:    filepath.Join(out, indexFile),
		PartnerMetadataPath:    filepath.Join(out, "partner_profiles.csv"),
		TrendSignalsPath:       filepath.Join(out, trendsFile),
	})

	cfg := &config.Config{Env: "prod", RateLimitRPS: 100, RateLimitBurst: 100}
	srv := httptest.NewServer(newHandler(cfg, svc, middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)))
	t.Cleanup(srv.Close)
	return srv
}

func TestServer(t *testing.T) {
	srv := setupTestServer(t)

	t.Run("FindCompetitors", func(t *testing.T) {
		body := `{"name":"Ledger","problem":"Payment processing for small merchants","solution":"api","value_proposition":"fast"}`
		resp, err := http.Post(srv.URL+"/api/ideas/competitors", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var snap matching.CompetitorSnapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			t.Fatal(err)
		}
		if len(snap.Competitors) != 2 || snap.Competitors[0].Name != "PayFlow" {
			t.Errorf("unexpected competitors %+v", snap.Competitors)
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Error("expected request id header")
		}
		if resp.Header.Get("Strict-Transport-Security") == "" {
			t.Error("expected HSTS in prod")
		}
	})

	t.Run("InsightsFromTrends", func(t *testing.T) {
		body := `{"name":"x","problem":"p","solution":"s","value_proposition":"v"}`
		resp, err := http.Post(srv.URL+"/api/ideas/insights", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var mi struct {
			Industry string `json:"industry"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&mi)
		if mi.Industry != "EdTech" {
			t.Errorf("expected EdTech from trend signals, got %q", mi.Industry)
		}
	})

	t.Run("Health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
	})

	t.Run("MetricsCompressed", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		if !resp.Uncompressed {
			t.Error("expected a gzip response")
		}
		if !strings.Contains(string(data), "match_requests_total") {
			t.Error("expected matching metrics to be exported")
		}
	})

	t.Run("SwaggerDoc", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/swagger/doc.json")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var doc struct {
			Paths map[string]json.RawMessage `json:"paths"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			t.Fatalf("expected a JSON document, got %v", err)
		}
		for _, route := range []string{routes.IdeaCompetitors, routes.IdeaInsights, routes.IdeaValidate, routes.PartnersSuggest, routes.Health} {
			if _, ok := doc.Paths[route]; !ok {
				t.Errorf("swagger document is missing %s", route)
			}
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}
