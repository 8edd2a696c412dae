package matching

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/PauloHFS/bizbloom/internal/corpus"
	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/insights"
	"github.com/PauloHFS/bizbloom/internal/logging"
	"github.com/PauloHFS/bizbloom/internal/metrics"
	"github.com/PauloHFS/bizbloom/internal/scoring"
)

const (
	tracerName = "github.com/PauloHFS/bizbloom/internal/matching"

	matcherCompetitors = "competitors"
	matcherPartners    = "partners"
)

type Options struct {
	CompetitorMetadataPath string
	CompetitorIndexPath    string
	PartnerMetadataPath    string
	TrendSignalsPath       string

	CompetitorK      int
	PartnerLimit     int
	PartnerSkillCap  int
	EmbedConcurrency int
}

func (o Options) withDefaults() Options {
	if o.CompetitorK <= 0 {
		o.CompetitorK = 2
	}
	if o.PartnerLimit <= 0 {
		o.PartnerLimit = 3
	}
	if o.PartnerSkillCap <= 0 {
		o.PartnerSkillCap = defaultSkillCap
	}
	if o.EmbedConcurrency <= 0 {
		o.EmbedConcurrency = 4
	}
	return o
}

// Service is the matching facade used by the HTTP layer. Corpora are loaded
// on first use and shared read-only afterwards. Callers always get a
// well-formed result: Unavailable outcomes become placeholders here.
type Service struct {
	embedder embedding.Embedder
	logger   *slog.Logger
	tracer   trace.Tracer
	opts     Options

	competitorMatcher *CompetitorMatcher
	partnerMatcher    *PartnerMatcher

	competitors *lazy[*corpus.CompetitorCorpus]
	partners    *lazy[*corpus.PartnerCorpus]
	trends      *lazy[[]corpus.Trend]
}

func NewService(e embedding.Embedder, loader *corpus.Loader, logger *slog.Logger, opts Options) *Service {
	opts = opts.withDefaults()
	s := &Service{
		embedder:          e,
		logger:            logger.With(slog.String("component", "matching")),
		tracer:            otel.Tracer(tracerName),
		opts:              opts,
		competitorMatcher: NewCompetitorMatcher(e),
		partnerMatcher:    NewPartnerMatcher(e, opts.PartnerSkillCap),
	}

	s.competitors = newLazy(func(ctx context.Context) (*corpus.CompetitorCorpus, error) {
		return loader.LoadCompetitors(ctx, opts.CompetitorMetadataPath, opts.CompetitorIndexPath, e)
	})
	s.partners = newLazy(func(ctx context.Context) (*corpus.PartnerCorpus, error) {
		return loader.LoadPartners(ctx, opts.PartnerMetadataPath, e, opts.EmbedConcurrency)
	})
	s.trends = newLazy(func(ctx context.Context) ([]corpus.Trend, error) {
		return loader.LoadTrends(ctx, opts.TrendSignalsPath)
	})
	return s
}

// FindCompetitors returns up to k nearest competitors. k <= 0 uses the
// configured default.
func (s *Service) FindCompetitors(ctx context.Context, idea Idea, k int) CompetitorSnapshot {
	if k <= 0 {
		k = s.opts.CompetitorK
	}

	ctx, span := s.tracer.Start(ctx, "matching.FindCompetitors", trace.WithAttributes(attribute.Int("k", k)))
	defer span.End()
	start := time.Now()

	var out Outcome[Competitor]
	c, err := s.competitors.get(ctx)
	if err != nil {
		out = Unavailable[Competitor](ReasonError, err)
	} else {
		out = s.competitorMatcher.Match(ctx, c, idea, k)
	}

	s.observe(ctx, span, matcherCompetitors, out.Label(), len(out.Results), out.Err, start)

	if !out.IsMatched() {
		return CompetitorSnapshot{Competitors: placeholderCompetitors(), MarketGap: marketGapNone}
	}
	return CompetitorSnapshot{Competitors: out.Results, MarketGap: marketGapMatched}
}

// SuggestPartners returns between one and limit partner profiles. limit <= 0
// uses the configured default.
func (s *Service) SuggestPartners(ctx context.Context, p Profile, limit int, industry string) []PartnerProfile {
	if limit <= 0 {
		limit = s.opts.PartnerLimit
	}

	ctx, span := s.tracer.Start(ctx, "matching.SuggestPartners", trace.WithAttributes(
		attribute.Int("limit", limit),
		attribute.String("industry", industry),
	))
	defer span.End()
	start := time.Now()

	var out Outcome[PartnerProfile]
	c, err := s.partners.get(ctx)
	if err != nil {
		out = Unavailable[PartnerProfile](ReasonError, err)
	} else {
		out = s.partnerMatcher.Match(ctx, c, p, limit, industry)
	}

	s.observe(ctx, span, matcherPartners, out.Label(), len(out.Results), out.Err, start)

	if !out.IsMatched() {
		return placeholderPartners(limit)
	}
	return out.Results
}

func (s *Service) ScoreValidation(trendCount, competitorCount int, industry string) scoring.ValidationScore {
	return scoring.Score(trendCount, competitorCount, industry)
}

// MarketInsight uses processed trend signals when they load, and keyword
// rules otherwise.
func (s *Service) MarketInsight(ctx context.Context, idea Idea) insights.MarketInsight {
	trends, err := s.trends.get(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load trend signals", slog.String("error", err.Error()))
		trends = nil
	}
	return insights.Generate(idea, trends)
}

type Status struct {
	Competitors int    `json:"competitors"`
	Partners    int    `json:"partners"`
	Trends      int    `json:"trends"`
	Error       string `json:"error,omitempty"`
}

// Ready forces every corpus to load and reports their sizes.
func (s *Service) Ready(ctx context.Context) Status {
	var st Status
	var errs []string

	if c, err := s.competitors.get(ctx); err != nil {
		errs = append(errs, err.Error())
	} else {
		st.Competitors = c.Len()
	}
	if p, err := s.partners.get(ctx); err != nil {
		errs = append(errs, err.Error())
	} else {
		st.Partners = p.Len()
	}
	if t, err := s.trends.get(ctx); err != nil {
		errs = append(errs, err.Error())
	} else {
		st.Trends = len(t)
	}

	if len(errs) > 0 {
		st.Error = errs[0]
	}
	return st
}

func (s *Service) observe(ctx context.Context, span trace.Span, matcher, outcome string, count int, err error, start time.Time) {
	metrics.MatchDuration.WithLabelValues(matcher).Observe(time.Since(start).Seconds())
	metrics.MatchRequests.WithLabelValues(matcher, outcome).Inc()

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("match_count", count),
	)
	logging.AddToEvent(ctx,
		slog.String("operation", matcher),
		slog.String("outcome", outcome),
		slog.Int("match_count", count),
	)

	if outcome == outcomeMatched {
		return
	}

	metrics.MatchFallbacks.WithLabelValues(matcher, outcome).Inc()
	logging.AddToEvent(ctx, slog.String("fallback_reason", outcome))

	attrs := []any{slog.String("matcher", matcher), slog.String("reason", outcome)}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "matcher failed, serving placeholders", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	s.logger.InfoContext(ctx, "no matches, serving placeholders", attrs...)
}
