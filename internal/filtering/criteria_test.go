package filtering

import (
	"testing"

	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCriteria(t *testing.T) {
	c := BuildCriteria("  acme ", "Python, SQL ,, react", "5")

	assert.Equal(t, "acme", c.SearchTerm)
	assert.Equal(t, []string{"python", "sql", "react"}, c.RequiredSkills)
	require.NotNil(t, c.MinExperienceYears)
	assert.Equal(t, 5.0, *c.MinExperienceYears)
}

func TestBuildCriteria_Empty(t *testing.T) {
	c := BuildCriteria("", "", "")

	assert.Empty(t, c.SearchTerm)
	assert.NotNil(t, c.RequiredSkills)
	assert.Empty(t, c.RequiredSkills)
	assert.Nil(t, c.MinExperienceYears)
	assert.False(t, c.HasMinExperience())
}

func TestParseMinExperience(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"integer", "3", ptr(3)},
		{"padded", " 4 ", ptr(4)},
		{"fraction", "2.5", ptr(2.5)},
		{"exponent", "1e1", ptr(10)},
		{"zero", "0", nil},
		{"negative", "-3", nil},
		{"not a number", "five", nil},
		{"nan", "NaN", nil},
		{"infinity", "Inf", nil},
		{"trailing junk", "5 years", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMinExperience(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestFromRaw(t *testing.T) {
	raw := types.RawCriteria{Search: "Ada", Skills: "go", MinExperience: "2"}
	c := FromRaw(raw)

	assert.Equal(t, "Ada", c.SearchTerm)
	assert.Equal(t, []string{"go"}, c.RequiredSkills)
	require.NotNil(t, c.MinExperienceYears)
	assert.Equal(t, 2.0, *c.MinExperienceYears)
}

func TestForJobDescription(t *testing.T) {
	jd := &types.JobDescription{
		Title:              "Data Engineer",
		RequiredSkills:     []string{"Python", "SQL", "python", " Airflow "},
		MinExperienceYears: 3,
	}

	c := ForJobDescription(jd)
	assert.Empty(t, c.SearchTerm)
	assert.Equal(t, []string{"python", "sql", "airflow"}, c.RequiredSkills)
	require.NotNil(t, c.MinExperienceYears)
	assert.Equal(t, 3.0, *c.MinExperienceYears)

	jd.MinExperienceYears = 0
	assert.Nil(t, ForJobDescription(jd).MinExperienceYears)
}

func ptr(f float64) *float64 {
	return &f
}
