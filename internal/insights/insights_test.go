package insights

import (
	"reflect"
	"testing"

	"github.com/PauloHFS/bizbloom/internal/corpus"
)

func TestGenerateKeywords(t *testing.T) {
	tests := []struct {
		name     string
		idea     Idea
		industry string
		trends   []string
	}{
		{"education", Idea{Problem: "Rural education lacks tutors"}, "EdTech", []string{"AI tutors", "Microlearning"}},
		{"medical", Idea{Solution: "Medical triage chatbot"}, "HealthTech", []string{"Remote care", "Preventative analytics"}},
		{"payment", Idea{ValueProposition: "Instant PAYMENT settlement"}, "FinTech", []string{"Embedded finance", "Fraud prevention"}},
		{"education wins over health", Idea{Problem: "health education"}, "EdTech", []string{"AI tutors", "Microlearning"}},
		{"general", Idea{Problem: "Vintage furniture resale"}, "General", []string{"AI enablement", "Automation"}},
		{"name is ignored", Idea{Name: "HealthCo", Problem: "furniture"}, "General", []string{"AI enablement", "Automation"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.idea, nil)
			if got.Industry != tt.industry {
				t.Errorf("expected industry %s, got %s", tt.industry, got.Industry)
			}
			if !reflect.DeepEqual(got.TopTrends, tt.trends) {
				t.Errorf("expected trends %v, got %v", tt.trends, got.TopTrends)
			}
			if len(got.CustomerSegments) == 0 || len(got.CustomerSegments) > 2 {
				t.Errorf("unexpected segments %v", got.CustomerSegments)
			}
		})
	}
}

func TestGenerateFromTrends(t *testing.T) {
	trends := []corpus.Trend{
		{Industry: "SaaS", Trend: "Vertical AI copilots"},
		{Industry: "FinTech", Trend: "Embedded lending"},
		{Industry: "FinTech", Trend: "Real-time payouts"},
		{Industry: "SaaS", Trend: "Usage pricing"},
	}

	got := Generate(Idea{Problem: "education"}, trends)
	want := MarketInsight{
		Industry:         "FinTech",
		TopTrends:        []string{"Vertical AI copilots", "Embedded lending"},
		CustomerSegments: []string{"SMBs", "Enterprise"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGenerateSingleTrend(t *testing.T) {
	got := Generate(Idea{}, []corpus.Trend{{Industry: "Retail", Trend: "Social commerce"}})
	if got.Industry != "Retail" || len(got.TopTrends) != 1 {
		t.Errorf("unexpected insight %+v", got)
	}
}

func TestGenerateDoesNotShareSlices(t *testing.T) {
	a := Generate(Idea{}, nil)
	a.TopTrends[0] = "mutated"
	b := Generate(Idea{}, nil)
	if b.TopTrends[0] != "AI enablement" {
		t.Error("defaults were mutated through a returned slice")
	}
}
