package corpus

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PauloHFS/bizbloom/internal/embedding"
	"github.com/PauloHFS/bizbloom/internal/vector"
)

func testLoader() *Loader {
	return NewLoader(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writeIndex(t *testing.T, path string, emb embedding.Embedder, texts []string) {
	t.Helper()
	ctx := context.Background()
	vectors := make([]vector.Vector, len(texts))
	for i, text := range texts {
		v, err := emb.Embed(ctx, text)
		if err != nil {
			t.Fatalf("failed to embed: %v", err)
		}
		vectors[i] = v
	}

	store, err := vector.OpenStore(path, false)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
	cfg := vector.Config{Dimension: emb.Dimension(), ModelID: emb.ModelID()}
	if err := store.Write(ctx, cfg, vectors); err != nil {
		t.Fatalf("failed to write store: %v", err)
	}
}

const competitorCSV = `name,description,url,industry,success_flag
TutorAI,AI tutoring platform for schools,https://tutor.example,EdTech,1
,missing name row,,EdTech,0
PayFlow,Payment processing for small merchants,,FinTech,0
`

func TestLoadCompetitors(t *testing.T) {
	ctx := context.Background()
	emb := embedding.NewHash(32)

	t.Run("LoadsAlignedCorpus", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "startup_metadata.csv", competitorCSV)
		index := filepath.Join(dir, "startup_index.db")
		writeIndex(t, index, emb, []string{
			"AI tutoring platform for schools",
			"missing name row",
			"Payment processing for small merchants",
		})

		c, err := testLoader().LoadCompetitors(ctx, meta, index, emb)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Len() != 2 {
			t.Errorf("expected 2 usable records, got %d", c.Len())
		}
		if c.Index().Len() != 3 {
			t.Errorf("expected 3 vectors, got %d", c.Index().Len())
		}
		if !c.Available() {
			t.Error("expected corpus to be available")
		}

		rec, ok := c.Lookup(2)
		if !ok || rec.Name != "PayFlow" || rec.Position != 2 {
			t.Errorf("expected PayFlow at position 2, got %+v %v", rec, ok)
		}
		if _, ok := c.Lookup(1); ok {
			t.Error("skipped row must not resolve")
		}
		if _, ok := c.Lookup(3); ok {
			t.Error("out of bounds id must not resolve")
		}
		if _, ok := c.Lookup(-1); ok {
			t.Error("negative id must not resolve")
		}

		first, _ := c.Lookup(0)
		if first.URL != "https://tutor.example" || first.Industry != "EdTech" || first.SuccessFlag != "1" {
			t.Errorf("unexpected optional fields %+v", first)
		}
	})

	t.Run("MissingFiles", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "startup_metadata.csv", competitorCSV)

		c, err := testLoader().LoadCompetitors(ctx, meta, filepath.Join(dir, "nope.db"), emb)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Available() || c.Len() != 0 {
			t.Error("expected empty corpus")
		}

		c, err = testLoader().LoadCompetitors(ctx, filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope.db"), emb)
		if err != nil || c.Available() {
			t.Errorf("expected empty corpus without error, got %v", err)
		}
		hits, err := c.Index().Query(make(vector.Vector, 32), 2)
		if err != nil || len(hits) != 0 {
			t.Errorf("expected empty query result, got %v %v", hits, err)
		}
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "startup_metadata.csv", competitorCSV)
		index := filepath.Join(dir, "startup_index.db")
		writeIndex(t, index, embedding.NewHash(8), []string{"a", "b", "c"})

		c, err := testLoader().LoadCompetitors(ctx, meta, index, emb)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c.Available() {
			t.Error("expected empty corpus on dimension mismatch")
		}
	})

	t.Run("CountMismatch", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "startup_metadata.csv", competitorCSV)
		index := filepath.Join(dir, "startup_index.db")
		writeIndex(t, index, emb, []string{"a", "b", "c", "d", "e"})

		c, err := testLoader().LoadCompetitors(ctx, meta, index, emb)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !c.Available() {
			t.Error("expected corpus to load despite count mismatch")
		}
		if _, ok := c.Lookup(4); ok {
			t.Error("vector without metadata must not resolve")
		}
	})

	t.Run("MissingColumns", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "startup_metadata.csv", "title,summary\nx,y\n")
		index := filepath.Join(dir, "startup_index.db")
		writeIndex(t, index, emb, []string{"y"})

		c, err := testLoader().LoadCompetitors(ctx, meta, index, emb)
		if err != nil || c.Available() {
			t.Errorf("expected empty corpus without error, got %v", err)
		}
	})

	t.Run("CorruptIndex", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "startup_metadata.csv", competitorCSV)
		index := writeFile(t, dir, "startup_index.db", "this is not sqlite")

		if _, err := testLoader().LoadCompetitors(ctx, meta, index, emb); err == nil {
			t.Error("expected error for unreadable index")
		}
	})
}

const partnerCSV = `name,expertise,skills,bio,contact,industry,business_focus
Ana,Growth marketing,SEO;Content|Paid ads,Scaled two SaaS startups,ana@example.com,SaaS,B2B
NoText,,,,nobody@example.com,SaaS,
Ben,Backend engineering,Go;Postgres;Kubernetes;AWS;Terraform,Infra lead,ben@example.com,HealthTech,
`

func TestLoadPartners(t *testing.T) {
	ctx := context.Background()
	emb := embedding.NewHash(32)

	t.Run("EmbedsUsableRecords", func(t *testing.T) {
		dir := t.TempDir()
		meta := writeFile(t, dir, "partner_profiles.csv", partnerCSV)

		p, err := testLoader().LoadPartners(ctx, meta, emb, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Len() != 2 {
			t.Fatalf("expected 2 partners, got %d", p.Len())
		}
		if p.Index().Len() != 2 {
			t.Errorf("expected 2 vectors, got %d", p.Index().Len())
		}

		ana := p.Records()[0]
		if !reflect.DeepEqual(ana.Skills, []string{"SEO", "Content", "Paid ads"}) {
			t.Errorf("unexpected skills %v", ana.Skills)
		}
		if ana.Position != 0 || p.Records()[1].Position != 2 {
			t.Error("positions must follow data rows")
		}

		want, _ := emb.Embed(ctx, ana.Text())
		scores, _ := p.Index().Similarities(want)
		if scores[0] < 0.9999 {
			t.Errorf("expected precomputed vector to match record text, got %v", scores[0])
		}
	})

	t.Run("Missing", func(t *testing.T) {
		p, err := testLoader().LoadPartners(ctx, filepath.Join(t.TempDir(), "none.csv"), emb, 0)
		if err != nil || p.Len() != 0 {
			t.Errorf("expected empty corpus, got %d, %v", p.Len(), err)
		}
	})
}

func TestLoadTrends(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "trend_signals.csv", "industry,trend\nEdTech,AI tutors\n,orphan\nFinTech,Embedded finance\n")

	trends, err := testLoader().LoadTrends(context.Background(), path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []Trend{{"EdTech", "AI tutors"}, {"FinTech", "Embedded finance"}}
	if !reflect.DeepEqual(trends, want) {
		t.Errorf("expected %v, got %v", want, trends)
	}

	missing, err := testLoader().LoadTrends(context.Background(), filepath.Join(dir, "none.csv"))
	if err != nil || len(missing) != 0 {
		t.Errorf("expected no trends, got %v %v", missing, err)
	}
}

func TestParseTableMalformedRows(t *testing.T) {
	input := "name,description\na,b\nonly-one-field\nc,d\n"
	tbl, err := parseTable(strings.NewReader(input), "inline", slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tbl.rows) != 3 {
		t.Fatalf("expected 3 row slots, got %d", len(tbl.rows))
	}
	if tbl.rows[1] != nil {
		t.Error("malformed row must leave a hole")
	}
	if tbl.get(tbl.rows[2], "description") != "d" {
		t.Error("rows after a malformed one keep their position")
	}
}

func TestParseTableHeader(t *testing.T) {
	input := "\ufeffNAME , Description\nx,y\n"
	tbl, err := parseTable(strings.NewReader(input), "inline", slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !tbl.has("name") || !tbl.has("description") {
		t.Errorf("expected case-insensitive header, got %v", tbl.columns)
	}
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Go;Rust", []string{"Go", "Rust"}},
		{" Sales | Marketing ;", []string{"Sales", "Marketing"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitSkills(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSkills(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPartnerText(t *testing.T) {
	p := Partner{Expertise: "Design", Skills: []string{"Figma", "UX"}, Bio: "Ex-agency", BusinessFocus: "B2C"}
	if got := p.Text(); got != "Design Figma UX Ex-agency B2C" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestReadRawAndTrendSignals(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "raw.csv", `Company Name,Short Desc,Industry Vertical,Success
Alpha,Alpha does analytics,SaaS,1.0
Beta,,SaaS,0
Gamma,Gamma does payments,FinTech,
Delta,Delta does data,SaaS,0
Epsilon,Epsilon does CRM,SaaS,1
`)

	records, err := ReadRaw(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected rows with empty cells to be dropped, got %d records", len(records))
	}
	for _, r := range records {
		if r.Name == "Beta" || r.Name == "Gamma" {
			t.Errorf("%s has an empty cell and must be dropped", r.Name)
		}
	}
	if records[0].SuccessFlag != "1" || records[1].SuccessFlag != "0" {
		t.Errorf("unexpected success flags %q %q", records[0].SuccessFlag, records[1].SuccessFlag)
	}

	Renumber(records)
	if records[2].Position != 2 {
		t.Errorf("expected position 2, got %d", records[2].Position)
	}

	trends := TrendSignals(records)
	want := []Trend{
		{"SaaS", "Alpha does analytics"},
		{"SaaS", "Delta does data"},
	}
	if !reflect.DeepEqual(trends, want) {
		t.Errorf("expected %v, got %v", want, trends)
	}
}

func TestReadRawDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "raw.csv", "title\nsomething\n")

	records, err := ReadRaw(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := Competitor{Name: defaultName, Description: defaultDescription, SuccessFlag: defaultSuccess, Industry: defaultIndustry}
	if len(records) != 1 || records[0] != want {
		t.Errorf("expected defaults, got %+v", records)
	}
}

func TestReadRawDropsEmptyIndustry(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "raw.csv", `name,description,industry
Kept,Kept does things,Retail
Blank,Blank does things,
`)

	records, err := ReadRaw(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 || records[0].Name != "Kept" {
		t.Fatalf("expected only the complete row, got %+v", records)
	}
	if records[0].SuccessFlag != defaultSuccess {
		t.Errorf("absent success column should default, got %q", records[0].SuccessFlag)
	}
}

func TestWriteCompetitorsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "startup_metadata.csv")
	in := []Competitor{
		{Name: "A, Inc.", Description: "has \"quotes\"", Industry: "SaaS", SuccessFlag: "1"},
		{Position: 1, Name: "B", Description: "plain", Industry: "General", SuccessFlag: "0"},
	}
	if err := WriteCompetitors(path, in); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	records, rows, err := testLoader().readCompetitors(path)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if rows != 2 || !reflect.DeepEqual(records, in) {
		t.Errorf("expected %+v, got %+v", in, records)
	}
}
