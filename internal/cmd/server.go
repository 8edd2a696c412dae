package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/PauloHFS/bizbloom/docs"
	"github.com/PauloHFS/bizbloom/internal/api"
	"github.com/PauloHFS/bizbloom/internal/config"
	"github.com/PauloHFS/bizbloom/internal/corpus"
	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/logging"
	"github.com/PauloHFS/bizbloom/internal/matching"
	"github.com/PauloHFS/bizbloom/internal/middleware"
	"github.com/PauloHFS/bizbloom/internal/routes"
	"github.com/PauloHFS/bizbloom/internal/telemetry"
)

// @title BizBloom Matching API
// @version 1.0
// @description Busca de concorrentes, sugestão de parceiros, insights de mercado e pontuação de validação para ideias de startup.
// @host localhost:8080
// @BasePath /
func RunServer() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Init()
	logger := logging.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Exporter:    cfg.TracesExporter,
		ServiceName: "bizbloom-matcher",
		Version:     cfg.Version,
		Environment: cfg.Env,
	})
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	// 1. Embedder: sem modelo não há matching, falha aqui é fatal
	emb, err := newEmbedder(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize embedder", "error", err)
		os.Exit(1)
	}
	defer embedding.Close(emb)

	if err := embedding.Probe(ctx, emb, probeAttempts, logger); err != nil {
		logger.Error("embedder probe failed", "error", err)
		os.Exit(1)
	}

	// 2. Corpora carregados sob demanda na primeira requisição
	svc := matching.NewService(emb, corpus.NewLoader(logger), logger, matching.Options{
		CompetitorMetadataPath: cfg.CompetitorMetadataPath,
		CompetitorIndexPath:    cfg.CompetitorIndexPath,
		PartnerMetadataPath:    cfg.PartnerMetadataPath,
		TrendSignalsPath:       cfg.TrendSignalsPath,
		CompetitorK:            cfg.Matching.CompetitorK,
		PartnerLimit:           cfg.Matching.PartnerLimit,
		PartnerSkillCap:        cfg.Matching.PartnerSkillCap,
		EmbedConcurrency:       cfg.Matching.EmbedConcurrency,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHandler(cfg, svc, limiter),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server started",
			"port", cfg.Port,
			"embedding_provider", cfg.EmbeddingProvider,
			"model_id", emb.ModelID(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("server stopping")
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("failed to flush traces", "error", err)
	}

	logger.Info("server exited properly")
}

// newHandler builds the routed API behind the middleware chain.
func newHandler(cfg *config.Config, m api.Matcher, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+routes.Metrics, promhttp.Handler())
	mux.Handle("GET "+routes.Swagger, httpSwagger.WrapHandler)
	api.RegisterRoutes(mux, api.HandlerDeps{Matching: m})

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	handler := middleware.Logger(
		middleware.Recovery(
			limiter.Middleware(
				middleware.SecurityHeaders(cfg.Env == "prod")(
					middleware.CORS(corsCfg)(mux),
				),
			),
		),
	)

	return gzhttp.GzipHandler(handler)
}
