package model

import "strings"

// Criteria are the free-text match terms of a context request
type Criteria struct {
	Terms    []string `json:"terms,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Grade    string   `json:"grade,omitempty"`
	Elements []string `json:"elements,omitempty"` // named pedagogical elements
}

// MatchTerms flattens the criteria into distinct lower-cased terms in first-seen
// order. Blank terms are dropped.
func (c Criteria) MatchTerms() []string {
	all := make([]string, 0, len(c.Terms)+len(c.Elements)+2)
	all = append(all, c.Terms...)
	all = append(all, c.Subject, c.Grade)
	all = append(all, c.Elements...)

	seen := make(map[string]struct{}, len(all))
	terms := make([]string, 0, len(all))
	for _, raw := range all {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
