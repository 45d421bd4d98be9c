package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYears_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"number", `{"total_years_experience": 3}`, 3},
		{"fraction", `{"total_years_experience": 2.5}`, 2.5},
		{"null", `{"total_years_experience": null}`, 0},
		{"missing", `{}`, 0},
		{"numeric string", `{"total_years_experience": " 4 "}`, 4},
		{"garbage string", `{"total_years_experience": "five"}`, 0},
		{"negative", `{"total_years_experience": -2}`, 0},
		{"boolean", `{"total_years_experience": true}`, 0},
		{"infinity string", `{"total_years_experience": "Infinity"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec CandidateRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &rec))
			assert.Equal(t, tt.want, rec.TotalYearsExperience.Float())
		})
	}
}

func TestNewYears(t *testing.T) {
	assert.Equal(t, Years(0), NewYears(nil))

	v := 7.0
	assert.Equal(t, Years(7), NewYears(&v))

	neg := -1.0
	assert.Equal(t, Years(0), NewYears(&neg))
}

func TestCandidatePool_Decode(t *testing.T) {
	input := `{
		"candidates": [
			{"id": "c1", "name": "Ada", "current_company": "Acme", "total_years_experience": 3, "skills": ["Python", "SQL"]},
			{"id": "c2", "name": "Grace", "skills": null}
		]
	}`

	var pool CandidatePool
	require.NoError(t, json.Unmarshal([]byte(input), &pool))
	require.Len(t, pool.Candidates, 2)
	assert.Equal(t, []string{"Python", "SQL"}, pool.Candidates[0].Skills)
	assert.Nil(t, pool.Candidates[1].Skills)
	assert.Equal(t, Years(0), pool.Candidates[1].TotalYearsExperience)
}

func TestLooseString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LooseString
	}{
		{"string", `{"min_experience": "5"}`, "5"},
		{"number", `{"min_experience": 5}`, "5"},
		{"decimal", `{"min_experience": 2.5}`, "2.5"},
		{"null", `{"min_experience": null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawCriteria
			require.NoError(t, json.Unmarshal([]byte(tt.input), &raw))
			assert.Equal(t, tt.want, raw.MinExperience)
		})
	}
}

func TestFilterCriteria_HasMinExperience(t *testing.T) {
	five := 5.0
	zero := 0.0

	assert.True(t, FilterCriteria{MinExperienceYears: &five}.HasMinExperience())
	assert.False(t, FilterCriteria{MinExperienceYears: &zero}.HasMinExperience())
	assert.False(t, FilterCriteria{}.HasMinExperience())
}

func TestScoredCandidate_JSONFlattensRecord(t *testing.T) {
	sc := ScoredCandidate{
		CandidateRecord: CandidateRecord{ID: "c1", Name: "Ada", Skills: []string{"Go"}},
		SkillMatchScore: 100,
		ExperienceScore: 60,
		OverallScore:    88,
		MatchedSkills:   []string{"go"},
		MissingSkills:   []string{},
		Band:            BandStrong,
	}

	data, err := json.Marshal(sc)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"id":"c1"`)
	assert.Contains(t, s, `"overall_score":88`)
	assert.Contains(t, s, `"missing_skills":[]`)
	assert.Contains(t, s, `"band":"strong"`)
	assert.NotContains(t, s, `"download_url"`)
}
