package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PauloHFS/bizbloom/internal/corpus"
	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

const defaultSkillCap = 4

type PartnerMatcher struct {
	embedder embedding.Embedder
	skillCap int
}

func NewPartnerMatcher(e embedding.Embedder, skillCap int) *PartnerMatcher {
	if skillCap <= 0 {
		skillCap = defaultSkillCap
	}
	return &PartnerMatcher{embedder: e, skillCap: skillCap}
}

type scored struct {
	rec   corpus.Partner
	score float64
}

// Match scores every partner against the profile, applies the industry
// filter, then keeps the top limit. Equal scores keep corpus order.
func (m *PartnerMatcher) Match(ctx context.Context, c *corpus.PartnerCorpus, p Profile, limit int, industry string) Outcome[PartnerProfile] {
	if c == nil || c.Len() == 0 {
		return Unavailable[PartnerProfile](ReasonNoCorpus, nil)
	}
	if limit < 1 {
		return Unavailable[PartnerProfile](ReasonNoMatches, nil)
	}

	q, err := m.embedder.Embed(ctx, strings.Join(p.queryText(), " "))
	if err != nil {
		return Unavailable[PartnerProfile](ReasonError, fmt.Errorf("embed profile: %w", err))
	}

	scores, err := c.Index().Similarities(q)
	if err != nil {
		return Unavailable[PartnerProfile](ReasonError, fmt.Errorf("score partners: %w", err))
	}

	industry = strings.TrimSpace(industry)
	candidates := make([]scored, 0, len(scores))
	for i, rec := range c.Records() {
		if industry != "" && !strings.EqualFold(rec.Industry, industry) {
			continue
		}
		candidates = append(candidates, scored{rec: rec, score: scores[i]})
	}
	if len(candidates) == 0 {
		return Unavailable[PartnerProfile](ReasonFilteredOut, nil)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]PartnerProfile, len(candidates))
	for i, cand := range candidates {
		skills := cand.rec.Skills
		if len(skills) > m.skillCap {
			skills = skills[:m.skillCap]
		}
		results[i] = PartnerProfile{
			Name:                 cand.rec.Name,
			InterestOverlapScore: vector.Round3(cand.score),
			Skills:               append([]string{}, skills...),
			ContactHint:          cand.rec.Contact,
		}
	}
	return Matched(results)
}
