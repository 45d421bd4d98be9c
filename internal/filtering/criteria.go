// Package filtering turns raw dashboard input into normalized filter criteria
// and into predicates a candidate store (or an in-memory pool) can apply.
package filtering

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// BuildCriteria normalizes the three raw filter inputs. It never fails:
// input it cannot use is treated as "no filter" for that field.
func BuildCriteria(search, skillsInput, minExperience string) types.FilterCriteria {
	return types.FilterCriteria{
		SearchTerm:         strings.TrimSpace(search),
		RequiredSkills:     skills.ParseList(skillsInput),
		MinExperienceYears: ParseMinExperience(minExperience),
	}
}

// FromRaw is BuildCriteria over a decoded request body.
func FromRaw(raw types.RawCriteria) types.FilterCriteria {
	return BuildCriteria(raw.Search, raw.Skills, string(raw.MinExperience))
}

// ForJobDescription derives criteria from a job description's requirements.
// Job descriptions carry no free-text search term.
func ForJobDescription(jd *types.JobDescription) types.FilterCriteria {
	c := types.FilterCriteria{
		RequiredSkills: skills.Dedupe(jd.RequiredSkills),
	}
	if minYears := jd.MinExperienceYears.Float(); minYears > 0 {
		c.MinExperienceYears = &minYears
	}
	return c
}

// ParseMinExperience parses a minimum-years input permissively.
// Returns nil for empty, non-numeric, non-finite, zero or negative input.
func ParseMinExperience(input string) *float64 {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	value, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return nil
	}

	return &value
}
