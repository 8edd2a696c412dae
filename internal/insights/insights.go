package insights

import (
	"strings"

	"github.com/PauloHFS/bizbloom/internal/corpus"
)

// Idea is the refined idea shape produced by the idea generator.
type Idea struct {
	Name             string `json:"name" validate:"required,max=200"`
	Problem          string `json:"problem" validate:"required,max=2000"`
	Solution         string `json:"solution" validate:"required,max=2000"`
	ValueProposition string `json:"value_proposition" validate:"required,max=2000"`
}

type MarketInsight struct {
	Industry         string   `json:"industry"`
	TopTrends        []string `json:"top_trends"`
	CustomerSegments []string `json:"customer_segments"`
}

type profile struct {
	keywords []string
	insight  MarketInsight
}

var profiles = []profile{
	{[]string{"education"}, MarketInsight{"EdTech", []string{"AI tutors", "Microlearning"}, []string{"Students", "Schools"}}},
	{[]string{"health", "medical"}, MarketInsight{"HealthTech", []string{"Remote care", "Preventative analytics"}, []string{"Clinics", "Patients"}}},
	{[]string{"finance", "payment"}, MarketInsight{"FinTech", []string{"Embedded finance", "Fraud prevention"}, []string{"SMBs", "Marketplaces"}}},
}

var general = MarketInsight{
	Industry:         "General",
	TopTrends:        []string{"AI enablement", "Automation"},
	CustomerSegments: []string{"Early adopters"},
}

// Generate derives a market insight from processed trend signals, falling
// back to keyword rules over the idea text when there are none.
func Generate(idea Idea, trends []corpus.Trend) MarketInsight {
	if len(trends) > 0 {
		return fromTrends(trends)
	}

	text := strings.ToLower(strings.Join([]string{idea.Problem, idea.Solution, idea.ValueProposition}, " "))
	for _, p := range profiles {
		for _, kw := range p.keywords {
			if strings.Contains(text, kw) {
				return clone(p.insight)
			}
		}
	}
	return clone(general)
}

func fromTrends(trends []corpus.Trend) MarketInsight {
	top := make([]string, 0, 2)
	for _, t := range trends[:min(2, len(trends))] {
		top = append(top, t.Trend)
	}
	return MarketInsight{
		Industry:         modeIndustry(trends),
		TopTrends:        top,
		CustomerSegments: []string{"SMBs", "Enterprise"},
	}
}

// modeIndustry returns the most frequent industry. Ties go to the
// lexicographically smallest label.
func modeIndustry(trends []corpus.Trend) string {
	counts := make(map[string]int)
	for _, t := range trends {
		counts[t.Industry]++
	}

	best, bestCount := "", 0
	for industry, n := range counts {
		if n > bestCount || (n == bestCount && industry < best) {
			best, bestCount = industry, n
		}
	}
	return best
}

func clone(m MarketInsight) MarketInsight {
	return MarketInsight{
		Industry:         m.Industry,
		TopTrends:        append([]string(nil), m.TopTrends...),
		CustomerSegments: append([]string(nil), m.CustomerSegments...),
	}
}
