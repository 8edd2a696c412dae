package scoring

import "strings"

type Readiness string

const (
	ReadinessLow    Readiness = "Low"
	ReadinessMedium Readiness = "Medium"
	ReadinessHigh   Readiness = "High"
)

type ValidationScore struct {
	Feasibility     int       `json:"feasibility_score"`
	Novelty         int       `json:"novelty_score"`
	MarketReadiness Readiness `json:"market_readiness"`
}

// Score is pure and deterministic. Negative counts are treated as zero.
func Score(trendCount, competitorCount int, industry string) ValidationScore {
	trendCount = max(trendCount, 0)
	competitorCount = max(competitorCount, 0)

	return ValidationScore{
		Feasibility:     feasibility(trendCount, competitorCount),
		Novelty:         novelty(competitorCount),
		MarketReadiness: readiness(industry, competitorCount),
	}
}

func feasibility(trends, competitors int) int {
	signal := min(trends, 3)*10 + 60
	penalty := max(0, competitors-1) * 5
	return clamp(signal - penalty)
}

func novelty(competitors int) int {
	return clamp(80 - min(30, competitors*10))
}

// readiness matches the literal substrings "health" and "finance", so a label
// like "FinTech" falls through to the competitor-count rule.
func readiness(industry string, competitors int) Readiness {
	label := strings.ToLower(industry)
	switch {
	case strings.Contains(label, "health"), strings.Contains(label, "finance"):
		return ReadinessMedium
	case competitors <= 1:
		return ReadinessLow
	default:
		return ReadinessHigh
	}
}

func clamp(v int) int {
	return max(0, min(100, v))
}
