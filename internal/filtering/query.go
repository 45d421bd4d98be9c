package filtering

import (
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// StoreQuery is the narrowing request sent to a candidate store.
// It is an optimization only: ranking stays correct over an unfiltered pool.
type StoreQuery struct {
	// NamePattern is an ILIKE pattern matched against name OR current company.
	// Empty means no text filter.
	NamePattern string
	// SearchTerm is the unescaped term behind NamePattern, for in-memory matching.
	SearchTerm string
	// SkillsAny keeps rows whose skills overlap this set. Empty means no skill filter.
	SkillsAny []string
}

// IsEmpty reports whether the query narrows nothing.
func (q StoreQuery) IsEmpty() bool {
	return q.NamePattern == "" && len(q.SkillsAny) == 0
}

// Query builds the store pre-filter for the given criteria.
func Query(c types.FilterCriteria) StoreQuery {
	q := StoreQuery{}
	if c.SearchTerm != "" {
		q.SearchTerm = c.SearchTerm
		q.NamePattern = likePattern(c.SearchTerm)
	}
	if len(c.RequiredSkills) > 0 {
		q.SkillsAny = append([]string(nil), c.RequiredSkills...)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps term for a substring ILIKE match, escaping LIKE wildcards
// so user input is matched literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
