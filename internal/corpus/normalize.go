package corpus

import (
	"log/slog"
	"strings"
)

const (
	defaultName        = "Unknown"
	defaultDescription = "No description"
	defaultSuccess     = "0"
	defaultIndustry    = "General"
)

// ReadRaw loads a raw startup dataset and maps its columns onto competitor
// records. Column names are matched loosely: the first header containing
// "name", "description" or "desc", "success" and "industry" wins. A column the
// file lacks takes its default for every row; a row with an empty cell in any
// mapped column is dropped.
func ReadRaw(path string, logger *slog.Logger) ([]Competitor, error) {
	tbl, err := readTable(path, logger)
	if err != nil {
		return nil, err
	}

	nameCol := tbl.find("name")
	descCol := tbl.find("description", "desc")
	successCol := tbl.find("success")
	industryCol := tbl.find("industry")

	records := make([]Competitor, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if row == nil {
			continue
		}
		name, ok1 := cell(tbl, row, nameCol, defaultName)
		desc, ok2 := cell(tbl, row, descCol, defaultDescription)
		success, ok3 := cell(tbl, row, successCol, defaultSuccess)
		industry, ok4 := cell(tbl, row, industryCol, defaultIndustry)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		records = append(records, Competitor{
			Name:        name,
			Description: desc,
			SuccessFlag: successFlag(success),
			Industry:    industry,
		})
	}
	return records, nil
}

// Renumber assigns positions in slice order.
func Renumber(records []Competitor) {
	for i := range records {
		records[i].Position = i
	}
}

// TrendSignals keeps the first two descriptions seen for each industry, in
// input order.
func TrendSignals(records []Competitor) []Trend {
	seen := make(map[string]int)
	trends := make([]Trend, 0)
	for _, r := range records {
		if seen[r.Industry] >= 2 {
			continue
		}
		seen[r.Industry]++
		trends = append(trends, Trend{Industry: r.Industry, Trend: r.Description})
	}
	return trends
}

// find returns the first column whose name contains any of the needles.
func (t *table) find(needles ...string) string {
	best := ""
	bestIdx := -1
	for name, idx := range t.columns {
		for _, n := range needles {
			if strings.Contains(name, n) && (bestIdx == -1 || idx < bestIdx) {
				best, bestIdx = name, idx
			}
		}
	}
	return best
}

// cell returns the fallback when the column is absent and reports false
// when the column exists but the row leaves it empty.
func cell(t *table, row []string, column, fallback string) (string, bool) {
	if column == "" {
		return fallback, true
	}
	v := t.get(row, column)
	return v, v != ""
}
