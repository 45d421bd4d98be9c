// Package ranking scores candidates against filter criteria and orders them by overall match.
package ranking

import (
	"math"

	"github.com/jonathan/candidate-ranker/internal/skills"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Weights of the overall score components. They sum to 1.
const (
	skillMatchWeight = 0.7
	experienceWeight = 0.3
)

const maxScore = 100

// Band thresholds on the overall score.
const (
	strongBandThreshold   = 80
	moderateBandThreshold = 50
)

// computeSkillMatch partitions the required skills into matched and missing,
// preserving their order, and returns the percentage matched.
// With no required skills every candidate scores 100 and both lists are empty.
func computeSkillMatch(candidateSkills skills.Set, required []string) (int, []string, []string) {
	matched := make([]string, 0, len(required))
	missing := make([]string, 0)

	if len(required) == 0 {
		return maxScore, matched, missing
	}

	for _, skill := range required {
		if candidateSkills.Has(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	return percent(float64(len(matched)), float64(len(required))), matched, missing
}

// computeExperienceScore compares a candidate's years against the minimum.
// Meeting the minimum, or having no minimum, scores 100.
func computeExperienceScore(years types.Years, c types.FilterCriteria) int {
	if !c.HasMinExperience() {
		return maxScore
	}

	minYears := *c.MinExperienceYears
	if years.Float() >= minYears {
		return maxScore
	}

	return percent(years.Float(), minYears)
}

// computeOverallScore blends the component scores with the fixed weights.
func computeOverallScore(skillScore, experienceScore int) int {
	return clampScore(math.Round(float64(skillScore)*skillMatchWeight + float64(experienceScore)*experienceWeight))
}

// percent returns round(part/whole*100) clamped to [0, 100]. whole must be positive.
func percent(part, whole float64) int {
	return clampScore(math.Round(part / whole * 100))
}

func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return int(v)
}

// classifyBand maps an overall score onto a display band.
func classifyBand(score int) types.Band {
	switch {
	case score >= strongBandThreshold:
		return types.BandStrong
	case score >= moderateBandThreshold:
		return types.BandModerate
	default:
		return types.BandWeak
	}
}
