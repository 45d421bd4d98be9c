package types

import (
	"bytes"
	"encoding/json"
)

// FilterCriteria is the normalized form of a user's filter input.
type FilterCriteria struct {
	SearchTerm         string   `json:"search_term,omitempty"`
	RequiredSkills     []string `json:"required_skills"`
	MinExperienceYears *float64 `json:"min_experience_years,omitempty"`
}

// HasMinExperience reports whether a positive minimum experience is set.
func (c FilterCriteria) HasMinExperience() bool {
	return c.MinExperienceYears != nil && *c.MinExperienceYears > 0
}

// RawCriteria carries the three free-form inputs exactly as the user typed them.
type RawCriteria struct {
	Search        string      `json:"search" validate:"max=200"`
	Skills        string      `json:"skills" validate:"max=2000"`
	MinExperience LooseString `json:"min_experience" validate:"max=32"`
}

// LooseString decodes either a JSON string or a bare JSON number into its text form.
// Form fields sometimes arrive as numbers; the builder parses them permissively later.
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	*s = LooseString(data)
	return nil
}
