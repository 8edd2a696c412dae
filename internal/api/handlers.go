package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PauloHFS/bizbloom/internal/insights"
	"github.com/PauloHFS/bizbloom/internal/logging"
	"github.com/PauloHFS/bizbloom/internal/matching"
	"github.com/PauloHFS/bizbloom/internal/routes"
	"github.com/PauloHFS/bizbloom/internal/validator"
)

const (
	maxCompetitorK  = 20
	maxPartnerLimit = 20
	defaultIndustry = "General"
)

func RegisterRoutes(mux *http.ServeMux, deps HandlerDeps) {
	mux.HandleFunc("POST "+routes.IdeaCompetitors, Handle(deps, handleCompetitors))
	mux.HandleFunc("POST "+routes.IdeaInsights, Handle(deps, handleInsights))
	mux.HandleFunc("POST "+routes.IdeaValidate, Handle(deps, handleValidate))
	mux.HandleFunc("POST "+routes.PartnersSuggest, Handle(deps, handlePartners))
	mux.HandleFunc("GET "+routes.Health, Handle(deps, handleHealth))
}

func sanitizeIdea(idea matching.Idea) matching.Idea {
	return matching.Idea{
		Name:             validator.Sanitize(idea.Name),
		Problem:          validator.Sanitize(idea.Problem),
		Solution:         validator.Sanitize(idea.Solution),
		ValueProposition: validator.Sanitize(idea.ValueProposition),
	}
}

func readIdea(w http.ResponseWriter, r *http.Request) (matching.Idea, error) {
	var idea matching.Idea
	if err := decodeJSON(w, r, &idea); err != nil {
		return idea, err
	}
	idea = sanitizeIdea(idea)
	if err := validator.Validate(idea); err != nil {
		return idea, err
	}
	return idea, nil
}

// handleCompetitors busca os concorrentes mais próximos da ideia.
// @Summary Buscar concorrentes
// @Description Retorna os concorrentes mais similares à ideia, do mais próximo ao mais distante.
// @Tags ideas
// @Accept json
// @Produce json
// @Param k query int false "Quantidade de concorrentes (1-20)"
// @Param idea body insights.Idea true "Ideia de negócio"
// @Success 200 {object} matching.CompetitorSnapshot
// @Failure 400 {object} errorResponse
// @Failure 413 {object} errorResponse
// @Router /api/ideas/competitors [post]
func handleCompetitors(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	k := 0
	if v := r.URL.Query().Get("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxCompetitorK {
			return badRequest("k must be an integer between 1 and "+strconv.Itoa(maxCompetitorK), err)
		}
		k = n
	}

	idea, err := readIdea(w, r)
	if err != nil {
		return err
	}

	snap := deps.Matching.FindCompetitors(r.Context(), idea, k)
	writeJSON(w, http.StatusOK, snap)
	return nil
}

// @Summary Insights de mercado
// @Description Classifica a indústria da ideia e resume tendências e segmentos de clientes.
// @Tags ideas
// @Accept json
// @Produce json
// @Param idea body insights.Idea true "Ideia de negócio"
// @Success 200 {object} insights.MarketInsight
// @Failure 400 {object} errorResponse
// @Router /api/ideas/insights [post]
func handleInsights(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	idea, err := readIdea(w, r)
	if err != nil {
		return err
	}

	mi := deps.Matching.MarketInsight(r.Context(), idea)
	logging.AddToEvent(r.Context(),
		slog.String("operation", "insights"),
		slog.String("industry", mi.Industry),
	)
	writeJSON(w, http.StatusOK, mi)
	return nil
}

type validateRequest struct {
	Idea        *matching.Idea               `json:"idea,omitempty"`
	Market      *insights.MarketInsight      `json:"market,omitempty"`
	Competitors *matching.CompetitorSnapshot `json:"competitors,omitempty"`
}

// @Summary Pontuar validação
// @Description Calcula viabilidade, novidade e prontidão de mercado a partir dos insights e concorrentes.
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body validateRequest true "Insights e concorrentes já calculados"
// @Success 200 {object} scoring.ValidationScore
// @Failure 400 {object} errorResponse
// @Router /api/ideas/validate [post]
func handleValidate(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	var req validateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	trendCount, competitorCount, industry := 0, 0, defaultIndustry
	if req.Market != nil {
		trendCount = len(req.Market.TopTrends)
		if s := validator.Sanitize(req.Market.Industry); s != "" {
			industry = s
		}
	}
	if req.Competitors != nil {
		competitorCount = len(req.Competitors.Competitors)
	}

	score := deps.Matching.ScoreValidation(trendCount, competitorCount, industry)
	logging.AddToEvent(r.Context(),
		slog.String("operation", "validate"),
		slog.Int("trend_count", trendCount),
		slog.Int("competitor_count", competitorCount),
	)
	writeJSON(w, http.StatusOK, score)
	return nil
}

type partnerRequest struct {
	matching.Profile
	Industry string `json:"industry,omitempty" validate:"max=100"`
	Limit    int    `json:"limit,omitempty" validate:"gte=0,lte=20"`
}

// @Summary Sugerir parceiros
// @Description Ordena perfis de parceiros pela similaridade com interesses, habilidades e foco.
// @Tags partners
// @Accept json
// @Produce json
// @Param request body partnerRequest true "Perfil do solicitante"
// @Success 200 {array} matching.PartnerProfile
// @Failure 400 {object} errorResponse
// @Router /api/partners/suggest [post]
func handlePartners(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	var req partnerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	req.Interests = validator.SanitizeAll(req.Interests)
	req.Skills = validator.SanitizeAll(req.Skills)
	req.BusinessFocus = validator.Sanitize(req.BusinessFocus)
	req.Industry = strings.TrimSpace(validator.Sanitize(req.Industry))
	if err := validator.Validate(req); err != nil {
		return err
	}

	profiles := deps.Matching.SuggestPartners(r.Context(), req.Profile, req.Limit, req.Industry)
	writeJSON(w, http.StatusOK, profiles)
	return nil
}

type healthResponse struct {
	State string `json:"status"`
	matching.Status
}

// handleHealth forces the corpora to load. An artifact that exists but
// cannot be read reports 503; absent corpora are healthy.
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func handleHealth(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	st := deps.Matching.Ready(r.Context())
	if st.Error != "" {
		logging.Get().ErrorContext(r.Context(), "health check failed: corpus unreadable", slog.String("error", st.Error))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{State: "degraded", Status: st})
		return nil
	}
	writeJSON(w, http.StatusOK, healthResponse{State: "ok", Status: st})
	return nil
}
