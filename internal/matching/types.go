package matching

import "github.com/PauloHFS/bizbloom/internal/insights"

type Idea = insights.Idea

// Competitor is one competitor entry. Similarity is nil only on placeholders.
type Competitor struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	URL              *string  `json:"url_if_known"`
	Similarity       *float64 `json:"similarity,omitempty"`
}

type CompetitorSnapshot struct {
	Competitors []Competitor `json:"competitors"`
	MarketGap   string       `json:"market_gap"`
}

// Profile is the requesting user's side of a partner match.
type Profile struct {
	Interests     []string `json:"interests" validate:"max=20,dive,max=200"`
	Skills        []string `json:"skills" validate:"max=20,dive,max=200"`
	BusinessFocus string   `json:"business_focus,omitempty" validate:"max=500"`
}

func (p Profile) queryText() []string {
	parts := make([]string, 0, len(p.Interests)+len(p.Skills)+1)
	parts = append(parts, p.Interests...)
	parts = append(parts, p.Skills...)
	if p.BusinessFocus != "" {
		parts = append(parts, p.BusinessFocus)
	}
	return parts
}

type PartnerProfile struct {
	Name                 string   `json:"name"`
	InterestOverlapScore float64  `json:"interest_overlap_score"`
	Skills               []string `json:"skills"`
	ContactHint          string   `json:"contact_hint"`
}
