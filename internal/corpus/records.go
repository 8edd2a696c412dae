package corpus

import "strings"

// Competitor is one row of the competitor metadata table. Position is the
// 0-based data row and doubles as the id of its vector in the index.
type Competitor struct {
	Position    int
	Name        string
	Description string
	URL         string
	Industry    string
	SuccessFlag string
}

type Partner struct {
	Position      int
	Name          string
	Expertise     string
	Skills        []string
	Bio           string
	Contact       string
	Industry      string
	BusinessFocus string
}

// Text is the string embedded for the partner at load time.
func (p Partner) Text() string {
	parts := make([]string, 0, 3+len(p.Skills))
	if p.Expertise != "" {
		parts = append(parts, p.Expertise)
	}
	parts = append(parts, p.Skills...)
	if p.Bio != "" {
		parts = append(parts, p.Bio)
	}
	if p.BusinessFocus != "" {
		parts = append(parts, p.BusinessFocus)
	}
	return strings.Join(parts, " ")
}

type Trend struct {
	Industry string
	Trend    string
}

// SplitSkills splits a delimiter-joined skills cell on ';' or '|'.
func SplitSkills(cell string) []string {
	fields := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == '|'
	})
	skills := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
