package filtering

import (
	"strings"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Matches applies a store query to a single record in memory, with the same
// semantics the SQL store uses: case-insensitive substring on name OR company,
// AND skill overlap.
func Matches(q StoreQuery, rec *types.CandidateRecord) bool {
	if q.SearchTerm != "" {
		term := strings.ToLower(q.SearchTerm)
		if !strings.Contains(strings.ToLower(rec.Name), term) &&
			!strings.Contains(strings.ToLower(rec.CurrentCompany), term) {
			return false
		}
	}

	if len(q.SkillsAny) > 0 && !skills.NewSet(rec.Skills).Overlaps(q.SkillsAny) {
		return false
	}

	return true
}

// Apply returns the records of pool matching q, preserving pool order.
func Apply(q StoreQuery, pool []types.CandidateRecord) []types.CandidateRecord {
	if q.IsEmpty() {
		return pool
	}

	result := make([]types.CandidateRecord, 0, len(pool))
	for i := range pool {
		if Matches(q, &pool[i]) {
			result = append(result, pool[i])
		}
	}
	return result
}
