package persona

import "strings"

type Answer struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// Matcher scores quiz answers against the catalog weight table.
type Matcher struct {
	catalog *Catalog
}

func NewMatcher(c *Catalog) *Matcher {
	return &Matcher{catalog: c}
}

func (m *Matcher) Catalog() *Catalog { return m.catalog }

// Match returns the highest scoring persona. Ties resolve to the earliest
// persona in roster order, so empty input yields the first roster entry.
func (m *Matcher) Match(answers []Answer) (string, Profile) {
	scores := m.Scores(answers)
	best := 0
	for i, p := range m.catalog.Personas {
		if scores[p.Name] > scores[m.catalog.Personas[best].Name] {
			best = i
		}
	}
	p := m.catalog.Personas[best]
	return p.Name, p
}

// Scores returns the per-persona totals; every roster persona is present.
func (m *Matcher) Scores(answers []Answer) map[string]int {
	scores := make(map[string]int, len(m.catalog.Personas))
	for _, p := range m.catalog.Personas {
		scores[p.Name] = 0
	}
	for _, a := range answers {
		byLetter, ok := m.catalog.Weights[a.QuestionID]
		if !ok {
			continue
		}
		for name, w := range byLetter[normalizeLetter(a.Answer)] {
			scores[name] += w
		}
	}
	return scores
}

// Industry reads the industry question; unanswered or unknown letters map
// to the catalog default.
func (m *Matcher) Industry(answers []Answer) string {
	for _, a := range answers {
		if a.QuestionID != m.catalog.IndustryQuestion {
			continue
		}
		if ind, ok := m.catalog.Industries[normalizeLetter(a.Answer)]; ok {
			return ind
		}
	}
	return m.catalog.DefaultIndustry
}

func normalizeLetter(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
