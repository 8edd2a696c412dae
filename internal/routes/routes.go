package routes

const (
	IdeaCompetitors = "/api/ideas/competitors"
	IdeaInsights    = "/api/ideas/insights"
	IdeaValidate    = "/api/ideas/validate"
	PartnersSuggest = "/api/partners/suggest"
	Health          = "/health"
	Metrics         = "/metrics"
	Swagger         = "/swagger/"
)
