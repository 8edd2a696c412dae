package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/PauloHFS/bizbloom/internal/corpus"
	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

type CompetitorMatcher struct {
	embedder embedding.Embedder
}

func NewCompetitorMatcher(e embedding.Embedder) *CompetitorMatcher {
	return &CompetitorMatcher{embedder: e}
}

func competitorQuery(idea Idea) string {
	return strings.Join([]string{idea.Name, idea.Problem, idea.Solution, idea.ValueProposition}, " ")
}

// Match returns the k nearest corpus companies to the idea. Index ids that do
// not resolve to a metadata row are skipped.
func (m *CompetitorMatcher) Match(ctx context.Context, c *corpus.CompetitorCorpus, idea Idea, k int) Outcome[Competitor] {
	if c == nil || !c.Available() {
		return Unavailable[Competitor](ReasonNoCorpus, nil)
	}
	if k < 1 {
		return Unavailable[Competitor](ReasonNoMatches, nil)
	}

	q, err := m.embedder.Embed(ctx, competitorQuery(idea))
	if err != nil {
		return Unavailable[Competitor](ReasonError, fmt.Errorf("embed idea: %w", err))
	}

	hits, err := c.Index().Query(q, k)
	if err != nil {
		return Unavailable[Competitor](ReasonError, fmt.Errorf("query competitor index: %w", err))
	}

	results := make([]Competitor, 0, len(hits))
	for _, h := range hits {
		rec, ok := c.Lookup(h.ID)
		if !ok {
			continue
		}
		var url *string
		if rec.URL != "" {
			u := rec.URL
			url = &u
		}
		sim := vector.Round3(h.Similarity())
		results = append(results, Competitor{
			Name:             rec.Name,
			ShortDescription: rec.Description,
			URL:              url,
			Similarity:       &sim,
		})
	}

	if len(results) == 0 {
		return Unavailable[Competitor](ReasonNoMatches, nil)
	}
	return Matched(results)
}
