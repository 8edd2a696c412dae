package matching

const (
	marketGapMatched = "Exploit underserved niche or feature gaps versus nearest rivals."
	marketGapNone    = "Differentiate with sharper positioning or niche focus."
)

func placeholderCompetitors() []Competitor {
	return []Competitor{{
		Name:             "BenchmarkCo",
		ShortDescription: "Reference competitor placeholder.",
	}}
}

func placeholderPartners(limit int) []PartnerProfile {
	all := []PartnerProfile{
		{
			Name:                 "Partner Placeholder",
			InterestOverlapScore: 0.42,
			Skills:               []string{"Product", "Go-To-Market"},
			ContactHint:          "placeholder@example.com",
		},
		{
			Name:                 "Advisor Placeholder",
			InterestOverlapScore: 0.38,
			Skills:               []string{"Operations", "Fundraising"},
			ContactHint:          "advisor@example.com",
		},
	}
	return all[:max(1, min(limit, len(all)))]
}
