// Package api exposes the matching service as a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/PauloHFS/bizbloom/internal/insights"
	"github.com/PauloHFS/bizbloom/internal/logging"
	"github.com/PauloHFS/bizbloom/internal/matching"
	"github.com/PauloHFS/bizbloom/internal/scoring"
	"github.com/PauloHFS/bizbloom/internal/validator"
)

const maxBodyBytes = 1 << 20

// Matcher is the part of matching.Service the handlers use.
type Matcher interface {
	FindCompetitors(ctx context.Context, idea matching.Idea, k int) matching.CompetitorSnapshot
	SuggestPartners(ctx context.Context, p matching.Profile, limit int, industry string) []matching.PartnerProfile
	ScoreValidation(trendCount, competitorCount int, industry string) scoring.ValidationScore
	MarketInsight(ctx context.Context, idea matching.Idea) insights.MarketInsight
	Ready(ctx context.Context) matching.Status
}

type HandlerDeps struct {
	Matching Matcher
}

// AppHandler é um tipo customizado que permite retornar erros dos handlers
type AppHandler func(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error

// HTTPError carries a status and a message safe to show the client.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func badRequest(msg string, err error) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg, Err: err}
}

type errorResponse struct {
	Error   string                      `json:"error"`
	Details []validator.ValidationError `json:"details,omitempty"`
}

// Handle envolve nosso AppHandler para conformidade com http.HandlerFunc
func Handle(deps HandlerDeps, h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(deps, w, r)
		if err == nil {
			return
		}

		var (
			verr    validator.ValidationResult
			httpErr *HTTPError
		)
		switch {
		case errors.As(err, &verr):
			logging.AddToEvent(r.Context(), slog.String("validation_error", verr.Error()))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Details: verr.Errors})
		case errors.As(err, &httpErr):
			logging.AddToEvent(r.Context(), slog.String("client_error", err.Error()))
			writeJSON(w, httpErr.Status, errorResponse{Error: httpErr.Message})
		default:
			logging.Get().ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Get().Warn("failed to encode response", slog.Any("error", err))
	}
}

// decodeJSON reads a single JSON object bounded by maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "request body too large", Err: err}
		}
		return badRequest("malformed JSON body", err)
	}
	if dec.More() {
		return badRequest("request body must contain a single JSON object", nil)
	}
	return nil
}
